package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents a single independent cash ledger.
//
// Balance is invariant-bound: at all times it equals the sum of the signed
// amounts of the book's transactions. It is written exclusively by the ledger
// service through the repository's atomic commit; the book CRUD paths may
// update Name and UpdatedAt but never Balance.
type Book struct {
	BookID    string          `json:"bookID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"` // advisory, display only
}
