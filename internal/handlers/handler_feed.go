package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zahidx/cashbook/internal/apperrors"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/middleware"
)

// feedHandler exposes the live transaction feed of a book as a
// server-sent-events stream.
type feedHandler struct {
	feedService portssvc.FeedSvcFacade
}

func newFeedHandler(fs portssvc.FeedSvcFacade) *feedHandler {
	return &feedHandler{feedService: fs}
}

func registerFeedRoutes(rg *gin.RouterGroup, feedService portssvc.FeedSvcFacade) {
	h := newFeedHandler(feedService)
	rg.GET("/books/:bookID/feed", h.streamTransactions)
}

// streamTransactions subscribes the client to the book's feed. The first
// event carries the current list; every committed change pushes a fresh
// snapshot. The subscription is released when the client disconnects.
func (h *feedHandler) streamTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	updates, unsubscribe, err := h.feedService.Subscribe(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to subscribe to feed", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		}
		return
	}
	defer unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	logger.Info("Feed subscription opened", slog.String("book_id", bookID))
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("transactions", dto.ToTransactionResponses(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logger.Info("Feed subscription closed", slog.String("book_id", bookID))
}
