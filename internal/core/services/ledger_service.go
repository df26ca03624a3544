package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zahidx/cashbook/internal/apperrors"
	"github.com/zahidx/cashbook/internal/core/domain"
	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/middleware"
	"github.com/zahidx/cashbook/internal/utils/accounting"
)

// ledgerService is the balance mutator: the only code path that changes
// Book.Balance. Each operation is handed to the repository's atomic commit
// primitive, which pairs the balance write with the transaction write and
// retries on commit collisions.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
	notifier   portssvc.ChangeNotifier
}

// NewLedgerService creates a new ledger service. The notifier is signalled
// after every successful commit so the transaction feed can republish.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, notifier portssvc.ChangeNotifier) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		notifier:   notifier,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateTransactionData rejects non-positive amounts, blank details and
// unknown types before any store access. Collaborators validate upstream too;
// this is the core's own defence.
func validateTransactionData(txnType domain.TransactionType, amount decimal.Decimal, details string) error {
	if !txnType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	if strings.TrimSpace(details) == "" {
		return fmt.Errorf("%w: details must not be empty", apperrors.ErrValidation)
	}
	return nil
}

// AddTransaction records a new cash movement. The repository re-reads the
// book's balance, applies the signed amount and inserts the transaction in
// one commit; no intermediate state is ever observable.
func (s *ledgerService) AddTransaction(ctx context.Context, bookID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateTransactionData(req.Type, req.Amount, req.Details); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BookID:        bookID,
		Type:          req.Type,
		Amount:        req.Amount,
		Details:       strings.TrimSpace(req.Details),
		Timestamp:     time.Now().UTC(),
	}

	if err := s.ledgerRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to add transaction to book %s: %w", bookID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction added",
		slog.String("book_id", bookID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	s.notifyChanged(ctx, bookID)
	return &txn, nil
}

// EditTransaction updates a transaction's amount and details. The balance
// delta is derived from the transaction row as re-read inside the commit, so
// interleaved edits against the same book can never double-count; the caller's
// oldData is validated but never trusted for arithmetic. The type is immutable.
func (s *ledgerService) EditTransaction(ctx context.Context, bookID, transactionID string, oldData, newData dto.TransactionData) error {
	if err := validateTransactionData(oldData.Type, oldData.Amount, oldData.Details); err != nil {
		return err
	}
	if err := validateTransactionData(newData.Type, newData.Amount, newData.Details); err != nil {
		return err
	}
	if newData.Type != oldData.Type {
		return fmt.Errorf("%w: transaction type is immutable", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.ledgerRepo.UpdateTransaction(ctx, bookID, transactionID, newData.Amount, strings.TrimSpace(newData.Details), now); err != nil {
		return fmt.Errorf("failed to edit transaction %s in book %s: %w", transactionID, bookID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction edited",
		slog.String("book_id", bookID),
		slog.String("transaction_id", transactionID))
	s.notifyChanged(ctx, bookID)
	return nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// balance in one commit. Deleting an already-deleted transaction surfaces
// ErrTransactionNotFound so the caller can decide policy.
func (s *ledgerService) DeleteTransaction(ctx context.Context, bookID, transactionID string) error {
	now := time.Now().UTC()
	if err := s.ledgerRepo.DeleteTransaction(ctx, bookID, transactionID, now); err != nil {
		return fmt.Errorf("failed to delete transaction %s from book %s: %w", transactionID, bookID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction deleted",
		slog.String("book_id", bookID),
		slog.String("transaction_id", transactionID))
	s.notifyChanged(ctx, bookID)
	return nil
}

// ListTransactions returns the full list for a book, newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	return s.ledgerRepo.ListTransactionsByBookID(ctx, bookID)
}

// ListTransactionsPaged returns one newest-first page and a cursor token.
func (s *ledgerService) ListTransactionsPaged(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return s.ledgerRepo.ListTransactionsPaged(ctx, bookID, limit, nextToken)
}

// GetSummary computes derived totals and day groups over the current list.
func (s *ledgerService) GetSummary(ctx context.Context, bookID string) (accounting.Summary, []accounting.DayGroup, error) {
	txns, err := s.ledgerRepo.ListTransactionsByBookID(ctx, bookID)
	if err != nil {
		return accounting.Summary{}, nil, fmt.Errorf("failed to list transactions for book %s: %w", bookID, err)
	}
	return accounting.Summarize(txns), accounting.GroupByDay(txns), nil
}

func (s *ledgerService) notifyChanged(ctx context.Context, bookID string) {
	if s.notifier != nil {
		s.notifier.BookChanged(ctx, bookID)
	}
}
