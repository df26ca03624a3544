package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zahidx/cashbook/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a cash movement.
// The gt=0 binding on Amount relies on the decimal custom type func registered
// in handlers.RegisterBindings.
type CreateTransactionRequest struct {
	Type    domain.TransactionType `json:"type" binding:"required,oneof=cash-in cash-out"`
	Amount  decimal.Decimal        `json:"amount" binding:"required,gt=0"`
	Details string                 `json:"details" binding:"required"`
}

// TransactionData carries the caller's view of a transaction's mutable fields
// plus its type, used as the old/new pair on edits. Type is immutable on edit;
// the new data's type must equal the old one.
type TransactionData struct {
	Type    domain.TransactionType `json:"type" binding:"required,oneof=cash-in cash-out"`
	Amount  decimal.Decimal        `json:"amount" binding:"required,gt=0"`
	Details string                 `json:"details" binding:"required"`
}

// EditTransactionRequest defines the payload for editing a transaction.
type EditTransactionRequest struct {
	Old TransactionData `json:"old" binding:"required"`
	New TransactionData `json:"new" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	BookID        string                 `json:"bookID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Details       string                 `json:"details"`
	Timestamp     time.Time              `json:"timestamp"`
}

// ListTransactionsResponse is one page of a book's transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		BookID:        txn.BookID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		Details:       txn.Details,
		Timestamp:     txn.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
