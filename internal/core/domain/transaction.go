package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a cash movement.
type TransactionType string

const (
	CashIn  TransactionType = "cash-in"
	CashOut TransactionType = "cash-out"
)

// IsValid reports whether t is one of the two known directions.
func (t TransactionType) IsValid() bool {
	return t == CashIn || t == CashOut
}

// Transaction represents a single signed cash movement belonging to one book.
// The type is immutable once created; edits may change amount and details only.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // scoped to the parent book
	BookID        string          `json:"bookID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	Details       string          `json:"details"`
	Timestamp     time.Time       `json:"timestamp"` // creation time, set by the core
	Seq           int64           `json:"-"`         // store-assigned commit order, newest-first tie-breaker
}

// SignedAmount is the single arithmetic rule of the ledger:
// +amount for cash-in, -amount for cash-out.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == CashIn {
		return t.Amount
	}
	return t.Amount.Neg()
}
