package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahidx/cashbook/internal/core/domain"
	"github.com/zahidx/cashbook/internal/utils/accounting"
)

func txn(txnType domain.TransactionType, amount string, ts time.Time) domain.Transaction {
	return domain.Transaction{
		Type:      txnType,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: ts,
	}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	txns := []domain.Transaction{
		txn(domain.CashIn, "100", now),
		txn(domain.CashOut, "30", now),
		txn(domain.CashIn, "5.50", now),
		txn(domain.CashOut, "0.25", now),
	}

	s := accounting.Summarize(txns)

	assert.True(t, s.TotalCashIn.Equal(decimal.RequireFromString("105.50")), "cash in: %s", s.TotalCashIn)
	assert.True(t, s.TotalCashOut.Equal(decimal.RequireFromString("30.25")), "cash out: %s", s.TotalCashOut)
	assert.True(t, s.Net.Equal(decimal.RequireFromString("75.25")), "net: %s", s.Net)
}

func TestSummarizeEmpty(t *testing.T) {
	s := accounting.Summarize(nil)

	assert.True(t, s.TotalCashIn.IsZero())
	assert.True(t, s.TotalCashOut.IsZero())
	assert.True(t, s.Net.IsZero())
}

func TestSummarizeNetMatchesSignedSum(t *testing.T) {
	now := time.Now()
	txns := []domain.Transaction{
		txn(domain.CashIn, "12.34", now),
		txn(domain.CashOut, "7", now),
		txn(domain.CashOut, "1.01", now),
		txn(domain.CashIn, "3", now),
	}

	signedSum := decimal.Zero
	for i := range txns {
		signedSum = signedSum.Add(txns[i].SignedAmount())
	}

	s := accounting.Summarize(txns)
	assert.True(t, s.Net.Equal(signedSum), "net %s != signed sum %s", s.Net, signedSum)
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2025, 7, 15, 18, 30, 0, 0, time.Local)
	day1Earlier := time.Date(2025, 7, 15, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2025, 7, 14, 12, 0, 0, 0, time.Local)

	// Newest first, matching store ordering.
	txns := []domain.Transaction{
		txn(domain.CashIn, "10", day1),
		txn(domain.CashOut, "4", day1Earlier),
		txn(domain.CashIn, "7", day2),
	}

	groups := accounting.GroupByDay(txns)

	require.Len(t, groups, 2)
	assert.Equal(t, "July 15, 2025", groups[0].Date)
	assert.Equal(t, "July 14, 2025", groups[1].Date)
	require.Len(t, groups[0].Transactions, 2)
	require.Len(t, groups[1].Transactions, 1)
	// Order within a group follows input order.
	assert.True(t, groups[0].Transactions[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.True(t, groups[0].Transactions[1].Amount.Equal(decimal.NewFromInt(4)))
}

func TestGroupByDayEmpty(t *testing.T) {
	groups := accounting.GroupByDay(nil)
	assert.Empty(t, groups)
}
