package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zahidx/cashbook/internal/apperrors"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/middleware"
)

const defaultPageLimit = 50

// transactionHandler handles HTTP requests for a book's transactions.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

// registerTransactionRoutes registers transaction routes nested under a book.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	txns := rg.Group("/books/:bookID")
	{
		txns.POST("/transactions", h.addTransaction)
		txns.GET("/transactions", h.listTransactions)
		txns.PUT("/transactions/:transactionID", h.editTransaction)
		txns.DELETE("/transactions/:transactionID", h.deleteTransaction)
		txns.GET("/summary", h.getSummary)
	}
}

func (h *transactionHandler) addTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.AddTransaction(c.Request.Context(), bookID, req)
	if err != nil {
		h.respondMutationError(c, logger, err, "add transaction")
		return
	}

	logger.Info("Transaction added",
		slog.String("book_id", bookID),
		slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) editTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")
	transactionID := c.Param("transactionID")

	var req dto.EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.ledgerService.EditTransaction(c.Request.Context(), bookID, transactionID, req.Old, req.New)
	if err != nil {
		h.respondMutationError(c, logger, err, "edit transaction")
		return
	}

	logger.Info("Transaction edited",
		slog.String("book_id", bookID),
		slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")
	transactionID := c.Param("transactionID")

	err := h.ledgerService.DeleteTransaction(c.Request.Context(), bookID, transactionID)
	if err != nil {
		h.respondMutationError(c, logger, err, "delete transaction")
		return
	}

	logger.Info("Transaction deleted",
		slog.String("book_id", bookID),
		slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	limit := defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	txns, token, err := h.ledgerService.ListTransactionsPaged(c.Request.Context(), bookID, limit, nextToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		default:
			logger.Error("Failed to list transactions", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    token,
	})
}

func (h *transactionHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	summary, groups, err := h.ledgerService.GetSummary(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to compute summary", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary, groups))
}

// respondMutationError maps ledger mutation failures to HTTP statuses.
// ErrConflict means the bounded retry gave up on a serialization collision;
// the client may safely retry the request.
func (h *transactionHandler) respondMutationError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Commit conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent modification, please retry"})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Store unavailable", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store unavailable"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
