package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zahidx/cashbook/internal/apperrors"
	"github.com/zahidx/cashbook/internal/core/domain"
	portsrepo "github.com/zahidx/cashbook/internal/core/ports/repositories"
)

// PgxBookRepository persists Book records. It never writes the balance
// column; that belongs to the ledger commit path.
type PgxBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new repository for book data.
func NewBookRepository(pool *pgxpool.Pool) portsrepo.BookRepository {
	return &PgxBookRepository{pool: pool}
}

var _ portsrepo.BookRepository = (*PgxBookRepository)(nil)

// SaveBook inserts a new book.
func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO books (book_id, name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`,
		book.BookID,
		book.Name,
		book.Balance,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: book with ID %s already exists", apperrors.ErrDuplicate, book.BookID)
		}
		return fmt.Errorf("%w: failed to save book %s: %v", apperrors.ErrStoreUnavailable, book.BookID, err)
	}
	return nil
}

// FindBookByID retrieves a book by its ID, including the stored balance.
func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	var book domain.Book
	err := r.pool.QueryRow(ctx, `
		SELECT book_id, name, balance, created_at, updated_at
		FROM books
		WHERE book_id = $1;
	`, bookID).Scan(
		&book.BookID,
		&book.Name,
		&book.Balance,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("%w: failed to find book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	return &book, nil
}

// ListBooks retrieves every book, oldest first.
func (r *PgxBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT book_id, name, balance, created_at, updated_at
		FROM books
		ORDER BY created_at;
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query books: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.BookID,
			&book.Name,
			&book.Balance,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating book rows: %v", apperrors.ErrStoreUnavailable, err)
	}
	return books, nil
}

// UpdateBookName updates the display name and updated_at only.
func (r *PgxBookRepository) UpdateBookName(ctx context.Context, bookID string, name string, updatedAt time.Time) error {
	cmdTag, err := r.pool.Exec(ctx, `
		UPDATE books SET name = $2, updated_at = $3 WHERE book_id = $1;
	`, bookID, name, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to rename book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes the book row; the transactions FK cascades, so the book
// and its transaction set disappear in one atomic statement.
func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete book %s: %v", apperrors.ErrStoreUnavailable, bookID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}
