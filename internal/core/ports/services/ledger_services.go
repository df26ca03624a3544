package services

import (
	"context"

	"github.com/zahidx/cashbook/internal/core/domain"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/utils/accounting"
)

// LedgerSvcFacade is the balance mutator: the sole writer of Book.Balance.
// Every mutation commits the balance change and the transaction record as one
// atomic unit against the store.
type LedgerSvcFacade interface {
	// AddTransaction records a new cash movement and applies its signed amount
	// to the book's balance in the same commit.
	AddTransaction(ctx context.Context, bookID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// EditTransaction updates a transaction's amount and details and applies
	// the effect delta to the freshly-read balance in the same commit. The
	// transaction's type is immutable; oldData and newData must agree on it.
	EditTransaction(ctx context.Context, bookID, transactionID string, oldData, newData dto.TransactionData) error

	// DeleteTransaction removes a transaction and reverses its signed amount
	// on the balance in the same commit.
	DeleteTransaction(ctx context.Context, bookID, transactionID string) error

	// ListTransactions returns the full list, newest first.
	ListTransactions(ctx context.Context, bookID string) ([]domain.Transaction, error)

	// ListTransactionsPaged returns one newest-first page plus a cursor token.
	ListTransactionsPaged(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// GetSummary computes derived totals and day groups over the current list.
	GetSummary(ctx context.Context, bookID string) (accounting.Summary, []accounting.DayGroup, error)
}
