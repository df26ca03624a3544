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
)

// bookService owns the Book record's lifecycle: create, rename, delete.
// It reads balances but never writes them; that is the ledger service's job.
type bookService struct {
	bookRepo portsrepo.BookRepository
	notifier portssvc.ChangeNotifier
}

// NewBookService creates a new book service.
func NewBookService(bookRepo portsrepo.BookRepository, notifier portssvc.ChangeNotifier) portssvc.BookSvcFacade {
	return &bookService{
		bookRepo: bookRepo,
		notifier: notifier,
	}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

// CreateBook creates a new book with a zero balance.
func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: book name must not be empty", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	book := domain.Book{
		BookID:    uuid.NewString(),
		Name:      name,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Book created", slog.String("book_id", book.BookID))
	return &book, nil
}

// GetBookByID retrieves a book, including its stored balance.
func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.bookRepo.FindBookByID(ctx, bookID)
}

// ListBooks returns every book.
func (s *bookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.ListBooks(ctx)
}

// RenameBook updates the display name. It goes through UpdateBookName, which
// touches name and updated_at only; the balance stays with the ledger path.
func (s *bookService) RenameBook(ctx context.Context, bookID string, req dto.RenameBookRequest) (*domain.Book, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: book name must not be empty", apperrors.ErrValidation)
	}

	if err := s.bookRepo.UpdateBookName(ctx, bookID, name, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to rename book %s: %w", bookID, err)
	}
	return s.bookRepo.FindBookByID(ctx, bookID)
}

// DeleteBook removes the book and, by cascade, its transactions in one commit.
func (s *bookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("failed to delete book %s: %w", bookID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Book deleted", slog.String("book_id", bookID))
	if s.notifier != nil {
		s.notifier.BookChanged(ctx, bookID)
	}
	return nil
}
