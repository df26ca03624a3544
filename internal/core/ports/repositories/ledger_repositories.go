package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zahidx/cashbook/internal/core/domain"
)

// TransactionReader defines the read side of the transaction collection.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, bookID, transactionID string) (*domain.Transaction, error)
	// ListTransactionsByBookID returns the full transaction list for a book,
	// ordered by timestamp descending with commit order as tie-breaker.
	ListTransactionsByBookID(ctx context.Context, bookID string) ([]domain.Transaction, error)
	// ListTransactionsPaged returns one page in the same order, plus a token
	// for the next page (nil when exhausted).
	ListTransactionsPaged(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerRepository is the atomic multi-record commit primitive of the store.
//
// Every mutation pairs a balance write on the book row with a write on one
// transaction row; the pair commits indivisibly or not at all, and the
// balance applied is always computed against the balance re-read inside the
// same commit. Implementations retry internally on commit collisions, bounded,
// and surface apperrors.ErrConflict once the budget is exhausted.
type LedgerRepository interface {
	TransactionReader

	// CreateTransaction inserts txn and applies txn.SignedAmount() to the
	// book's balance. Fails with apperrors.ErrBookNotFound if the book row is
	// gone at commit time.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction sets the transaction's amount and details and applies
	// the resulting effect delta to the book's balance. The delta is computed
	// from the transaction row as re-read inside the commit, so it stays
	// correct under interleaving with other edits. The transaction's type is
	// immutable and not part of the update.
	UpdateTransaction(ctx context.Context, bookID, transactionID string, amount decimal.Decimal, details string, updatedAt time.Time) error

	// DeleteTransaction removes the transaction row and reverses its signed
	// amount on the book's balance, again from the row re-read inside the
	// commit.
	DeleteTransaction(ctx context.Context, bookID, transactionID string, updatedAt time.Time) error
}
