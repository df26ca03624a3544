package accounting

import (
	"github.com/shopspring/decimal"
	"github.com/zahidx/cashbook/internal/core/domain"
)

// dateKeyFormat matches the long-form en-US grouping key shown in the UI,
// e.g. "July 15, 2025".
const dateKeyFormat = "January 2, 2006"

// Summary holds the derived totals for a transaction list.
// Net always equals the book's stored balance when the list is complete and
// up to date; it is a cross-check, not an independent computation path.
type Summary struct {
	TotalCashIn  decimal.Decimal
	TotalCashOut decimal.Decimal
	Net          decimal.Decimal
}

// Summarize computes totals over whatever transaction list it is given.
// It holds no state and has no failure modes.
func Summarize(txns []domain.Transaction) Summary {
	cashIn := decimal.Zero
	cashOut := decimal.Zero
	for _, txn := range txns {
		if txn.Type == domain.CashIn {
			cashIn = cashIn.Add(txn.Amount)
		} else {
			cashOut = cashOut.Add(txn.Amount)
		}
	}
	return Summary{
		TotalCashIn:  cashIn,
		TotalCashOut: cashOut,
		Net:          cashIn.Sub(cashOut),
	}
}

// DayGroup is one calendar day of transactions.
type DayGroup struct {
	Date         string
	Transactions []domain.Transaction
}

// GroupByDay splits a transaction list into calendar-day groups keyed by the
// transaction's local date. The input is expected newest-first; that order is
// preserved within and across groups.
func GroupByDay(txns []domain.Transaction) []DayGroup {
	groups := []DayGroup{}
	index := map[string]int{}
	for _, txn := range txns {
		key := txn.Timestamp.Local().Format(dateKeyFormat)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, txn)
	}
	return groups
}
