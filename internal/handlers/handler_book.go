package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zahidx/cashbook/internal/apperrors"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/middleware"
)

// bookHandler handles HTTP requests related to books.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bs}
}

// registerBookRoutes registers routes for book CRUD.
func registerBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listBooks)
		books.GET("/:bookID", h.getBook)
		books.PUT("/:bookID", h.renameBook)
		books.DELETE("/:bookID", h.deleteBook)
	}
}

func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newBook, err := h.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating book", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create book", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		}
		return
	}

	logger.Info("Book created", slog.String("book_id", newBook.BookID))
	c.JSON(http.StatusCreated, dto.ToBookResponse(newBook))
}

func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

func (h *bookHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	book, err := h.bookService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to get book", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *bookHandler) renameBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	var req dto.RenameBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RenameBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	book, err := h.bookService.RenameBook(c.Request.Context(), bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		default:
			logger.Error("Failed to rename book", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename book"})
		}
		return
	}

	logger.Info("Book renamed", slog.String("book_id", bookID))
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *bookHandler) deleteBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	err := h.bookService.DeleteBook(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		} else {
			logger.Error("Failed to delete book", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		}
		return
	}

	logger.Info("Book deleted", slog.String("book_id", bookID))
	c.Status(http.StatusNoContent)
}
