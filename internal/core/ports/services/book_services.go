package services

import (
	"context"

	"github.com/zahidx/cashbook/internal/core/domain"
	"github.com/zahidx/cashbook/internal/dto"
)

// BookSvcFacade defines the book CRUD collaborator. It owns creation, rename
// and deletion of the Book record itself; it never writes the balance.
type BookSvcFacade interface {
	CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error)
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	RenameBook(ctx context.Context, bookID string, req dto.RenameBookRequest) (*domain.Book, error)
	// DeleteBook removes the book and cascade-deletes its transactions.
	DeleteBook(ctx context.Context, bookID string) error
}
