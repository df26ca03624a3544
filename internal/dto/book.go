package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zahidx/cashbook/internal/core/domain"
)

// CreateBookRequest defines the data needed to create a new book.
type CreateBookRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameBookRequest defines the data allowed when renaming a book.
// Rename never touches the balance.
type RenameBookRequest struct {
	Name string `json:"name" binding:"required"`
}

// BookResponse defines the data returned for a book.
type BookResponse struct {
	BookID    string          `json:"bookID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:    b.BookID,
		Name:      b.Name,
		Balance:   b.Balance,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBookResponses converts a slice of domain.Book to []BookResponse.
func ToBookResponses(books []domain.Book) []BookResponse {
	responses := make([]BookResponse, len(books))
	for i := range books {
		responses[i] = ToBookResponse(&books[i])
	}
	return responses
}
