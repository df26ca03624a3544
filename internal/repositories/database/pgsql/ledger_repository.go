package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zahidx/cashbook/internal/apperrors"
	"github.com/zahidx/cashbook/internal/core/domain"
	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
	"github.com/zahidx/cashbook/internal/utils/pagination"
)

// PgxLedgerRepository implements the atomic multi-record commit primitive on
// Postgres. Every mutation re-reads the book's balance inside a serializable
// transaction and writes the new balance together with the transaction row;
// the base repository retries the unit on commit collisions.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for transaction and balance data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// bookBalance reads the book's current balance inside the commit. This is the
// re-read every mutation's arithmetic is based on.
func bookBalance(ctx context.Context, tx pgx.Tx, bookID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM books WHERE book_id = $1;`, bookID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrBookNotFound
		}
		return decimal.Zero, fmt.Errorf("%w: failed to read balance for book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	return balance, nil
}

func writeBookBalance(ctx context.Context, tx pgx.Tx, bookID string, balance decimal.Decimal, updatedAt time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE books SET balance = $2, updated_at = $3 WHERE book_id = $1;`,
		bookID, balance, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to write balance for book %s: %w", bookID, err)
	}
	return nil
}

// CreateTransaction inserts the transaction and applies its signed amount to
// the book's balance in one commit.
func (r *PgxLedgerRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	return r.CommitAtomic(ctx, func(tx pgx.Tx) error {
		balance, err := bookBalance(ctx, tx, txn.BookID)
		if err != nil {
			return err
		}

		if err := writeBookBalance(ctx, tx, txn.BookID, balance.Add(txn.SignedAmount()), txn.Timestamp); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (book_id, transaction_id, type, amount, details, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6);
		`,
			txn.BookID,
			txn.TransactionID,
			string(txn.Type),
			txn.Amount,
			txn.Details,
			txn.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
		}
		return nil
	})
}

// UpdateTransaction sets amount and details and applies the effect delta,
// computed from the row as re-read inside this same commit, to the balance.
func (r *PgxLedgerRepository) UpdateTransaction(ctx context.Context, bookID, transactionID string, amount decimal.Decimal, details string, updatedAt time.Time) error {
	return r.CommitAtomic(ctx, func(tx pgx.Tx) error {
		balance, err := bookBalance(ctx, tx, bookID)
		if err != nil {
			return err
		}

		old, err := findTransactionInTx(ctx, tx, bookID, transactionID)
		if err != nil {
			return err
		}

		// Type is immutable: the new effect reuses the stored type.
		updated := domain.Transaction{Type: old.Type, Amount: amount}
		delta := updated.SignedAmount().Sub(old.SignedAmount())

		if err := writeBookBalance(ctx, tx, bookID, balance.Add(delta), updatedAt); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE transactions SET amount = $3, details = $4
			WHERE book_id = $1 AND transaction_id = $2;
		`, bookID, transactionID, amount, details)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
		}
		return nil
	})
}

// DeleteTransaction removes the row and reverses its signed amount on the
// balance in one commit. A vanished row surfaces ErrTransactionNotFound.
func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, bookID, transactionID string, updatedAt time.Time) error {
	return r.CommitAtomic(ctx, func(tx pgx.Tx) error {
		balance, err := bookBalance(ctx, tx, bookID)
		if err != nil {
			return err
		}

		old, err := findTransactionInTx(ctx, tx, bookID, transactionID)
		if err != nil {
			return err
		}

		if err := writeBookBalance(ctx, tx, bookID, balance.Sub(old.SignedAmount()), updatedAt); err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM transactions WHERE book_id = $1 AND transaction_id = $2;`,
			bookID, transactionID)
		if err != nil {
			return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrTransactionNotFound
		}
		return nil
	})
}

func findTransactionInTx(ctx context.Context, tx pgx.Tx, bookID, transactionID string) (*domain.Transaction, error) {
	txn := domain.Transaction{BookID: bookID, TransactionID: transactionID}
	err := tx.QueryRow(ctx, `
		SELECT type, amount, details, timestamp, seq
		FROM transactions
		WHERE book_id = $1 AND transaction_id = $2;
	`, bookID, transactionID).Scan(&txn.Type, &txn.Amount, &txn.Details, &txn.Timestamp, &txn.Seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: failed to find transaction %s: %v", apperrors.ErrStoreUnavailable, transactionID, err)
	}
	return &txn, nil
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, bookID, transactionID string) (*domain.Transaction, error) {
	txn := domain.Transaction{BookID: bookID, TransactionID: transactionID}
	err := r.Pool.QueryRow(ctx, `
		SELECT type, amount, details, timestamp, seq
		FROM transactions
		WHERE book_id = $1 AND transaction_id = $2;
	`, bookID, transactionID).Scan(&txn.Type, &txn.Amount, &txn.Details, &txn.Timestamp, &txn.Seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: failed to find transaction %s: %v", apperrors.ErrStoreUnavailable, transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByBookID retrieves the full transaction list for a book,
// ordered by timestamp descending; ties are broken by commit order.
func (r *PgxLedgerRepository) ListTransactionsByBookID(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT transaction_id, type, amount, details, timestamp, seq
		FROM transactions
		WHERE book_id = $1
		ORDER BY timestamp DESC, seq DESC;
	`, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions for book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	defer rows.Close()

	return scanTransactions(rows, bookID)
}

// ListTransactionsPaged retrieves one newest-first page using token-based
// cursor pagination over the (timestamp, seq) ordering.
func (r *PgxLedgerRepository) ListTransactionsPaged(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, type, amount, details, timestamp, seq
		FROM transactions
		WHERE book_id = $1
	`
	orderByClause := `ORDER BY timestamp DESC, seq DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{bookID}

	if nextToken != nil && *nextToken != "" {
		lastTimestamp, lastSeq, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		cursorClause := `AND (timestamp, seq) < ($2, $3)`
		args = append(args, lastTimestamp, lastSeq)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to query transactions for book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows, bookID)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.Seq)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}

	return transactions, nextTokenVal, nil
}

func scanTransactions(rows pgx.Rows, bookID string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		txn := domain.Transaction{BookID: bookID}
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.Type,
			&txn.Amount,
			&txn.Details,
			&txn.Timestamp,
			&txn.Seq,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for book %s: %w", bookID, err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating transaction rows for book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	return transactions, nil
}
