package repositories

import (
	"context"
	"time"

	"github.com/zahidx/cashbook/internal/core/domain"
)

// BookRepository defines the persistence operations for Books.
//
// UpdateBookName is the only mutation the book CRUD path is allowed: it
// touches name and updated_at and must never touch balance, which is owned
// exclusively by the ledger commit path.
type BookRepository interface {
	SaveBook(ctx context.Context, book domain.Book) error
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	UpdateBookName(ctx context.Context, bookID string, name string, updatedAt time.Time) error
	// DeleteBook removes the book and cascade-deletes its transactions in a
	// single atomic commit.
	DeleteBook(ctx context.Context, bookID string) error
}
