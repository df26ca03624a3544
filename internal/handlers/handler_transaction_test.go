package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zahidx/cashbook/internal/apperrors"
	"github.com/zahidx/cashbook/internal/core/domain"
	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
	"github.com/zahidx/cashbook/internal/dto"
	"github.com/zahidx/cashbook/internal/handlers"
	"github.com/zahidx/cashbook/internal/utils/accounting"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AddTransaction(ctx context.Context, bookID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) EditTransaction(ctx context.Context, bookID, transactionID string, oldData, newData dto.TransactionData) error {
	args := m.Called(ctx, bookID, transactionID, oldData, newData)
	return args.Error(0)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, bookID, transactionID string) error {
	args := m.Called(ctx, bookID, transactionID)
	return args.Error(0)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactionsPaged(ctx context.Context, bookID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, bookID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockLedgerService) GetSummary(ctx context.Context, bookID string) (accounting.Summary, []accounting.DayGroup, error) {
	args := m.Called(ctx, bookID)
	var groups []accounting.DayGroup
	if args.Get(1) != nil {
		groups = args.Get(1).([]accounting.DayGroup)
	}
	return args.Get(0).(accounting.Summary), groups, args.Error(2)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockBookService) RenameBook(ctx context.Context, bookID string, req dto.RenameBookRequest) (*domain.Book, error) {
	args := m.Called(ctx, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

// --- Mock FeedService ---
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Subscribe(ctx context.Context, bookID string) (<-chan []domain.Transaction, func(), error) {
	args := m.Called(ctx, bookID)
	var ch <-chan []domain.Transaction
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan []domain.Transaction)
	}
	var unsub func()
	if args.Get(1) != nil {
		unsub = args.Get(1).(func())
	}
	return ch, unsub, args.Error(2)
}

var _ portssvc.FeedSvcFacade = (*MockFeedService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
	mockBook   *MockBookService
	mockFeed   *MockFeedService
}

func (suite *TransactionHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterBindings()
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.mockBook = new(MockBookService)
	suite.mockFeed = new(MockFeedService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Book:   suite.mockBook,
		Ledger: suite.mockLedger,
		Feed:   suite.mockFeed,
	})
}

func (suite *TransactionHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// closeNotifyRecorder adds the CloseNotify method gin's streaming writer
// requires; the plain recorder does not implement http.CloseNotifier.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func (suite *TransactionHandlerTestSuite) performStream(path string) *closeNotifyRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := newCloseNotifyRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestAddTransaction_Success() {
	bookID := uuid.NewString()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		BookID:        bookID,
		Type:          domain.CashIn,
		Amount:        decimal.NewFromInt(50),
		Details:       "salary",
		Timestamp:     time.Now().UTC(),
	}

	suite.mockLedger.On("AddTransaction", mock.Anything, bookID, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Type == domain.CashIn && req.Amount.Equal(decimal.NewFromInt(50)) && req.Details == "salary"
	})).Return(txn, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/books/"+bookID+"/transactions", gin.H{
		"type": "cash-in", "amount": 50, "details": "salary",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.TransactionID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestAddTransaction_BindingRejectsBadPayload() {
	bookID := uuid.NewString()

	testCases := []struct {
		name string
		body gin.H
	}{
		{"missing details", gin.H{"type": "cash-in", "amount": 50}},
		{"bad type", gin.H{"type": "transfer", "amount": 50, "details": "x"}},
		{"negative amount", gin.H{"type": "cash-out", "amount": -5, "details": "x"}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.performJSON(http.MethodPost, "/api/v1/books/"+bookID+"/transactions", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockLedger.AssertNotCalled(suite.T(), "AddTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestAddTransaction_BookNotFound() {
	bookID := uuid.NewString()

	suite.mockLedger.On("AddTransaction", mock.Anything, bookID, mock.Anything).
		Return(nil, fmt.Errorf("add: %w", apperrors.ErrBookNotFound)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/books/"+bookID+"/transactions", gin.H{
		"type": "cash-in", "amount": 10, "details": "x",
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestAddTransaction_Conflict() {
	bookID := uuid.NewString()

	suite.mockLedger.On("AddTransaction", mock.Anything, bookID, mock.Anything).
		Return(nil, fmt.Errorf("add: %w", apperrors.ErrConflict)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/books/"+bookID+"/transactions", gin.H{
		"type": "cash-in", "amount": 10, "details": "x",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestEditTransaction_Success() {
	bookID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedger.On("EditTransaction", mock.Anything, bookID, transactionID,
		mock.AnythingOfType("dto.TransactionData"), mock.AnythingOfType("dto.TransactionData")).
		Return(nil).Once()

	w := suite.performJSON(http.MethodPut, "/api/v1/books/"+bookID+"/transactions/"+transactionID, gin.H{
		"old": gin.H{"type": "cash-in", "amount": 50, "details": "salary"},
		"new": gin.H{"type": "cash-in", "amount": 80, "details": "salary + bonus"},
	})

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NotFound() {
	bookID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedger.On("DeleteTransaction", mock.Anything, bookID, transactionID).
		Return(fmt.Errorf("delete: %w", apperrors.ErrTransactionNotFound)).Once()

	w := suite.performJSON(http.MethodDelete, "/api/v1/books/"+bookID+"/transactions/"+transactionID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PagedWithToken() {
	bookID := uuid.NewString()
	token := "bmV4dA=="
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), BookID: bookID, Type: domain.CashIn, Amount: decimal.NewFromInt(10), Details: "a"},
	}

	suite.mockLedger.On("ListTransactionsPaged", mock.Anything, bookID, 1, (*string)(nil)).
		Return(txns, &token, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/books/"+bookID+"/transactions?limit=1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BadLimit() {
	bookID := uuid.NewString()

	w := suite.performJSON(http.MethodGet, "/api/v1/books/"+bookID+"/transactions?limit=zero", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListTransactionsPaged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestGetSummary() {
	bookID := uuid.NewString()
	summary := accounting.Summary{
		TotalCashIn:  decimal.NewFromInt(100),
		TotalCashOut: decimal.NewFromInt(30),
		Net:          decimal.NewFromInt(70),
	}

	suite.mockLedger.On("GetSummary", mock.Anything, bookID).
		Return(summary, []accounting.DayGroup{}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/books/"+bookID+"/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Net.Equal(decimal.NewFromInt(70)))
}

func (suite *TransactionHandlerTestSuite) TestCreateBook() {
	book := &domain.Book{BookID: uuid.NewString(), Name: "Household", Balance: decimal.Zero}

	suite.mockBook.On("CreateBook", mock.Anything, dto.CreateBookRequest{Name: "Household"}).
		Return(book, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/books", gin.H{"name": "Household"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BookResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(book.BookID, resp.BookID)
	suite.True(resp.Balance.IsZero())
}

func (suite *TransactionHandlerTestSuite) TestGetBook_NotFound() {
	bookID := uuid.NewString()

	suite.mockBook.On("GetBookByID", mock.Anything, bookID).
		Return(nil, apperrors.ErrBookNotFound).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/books/"+bookID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestFeedStream_DeliversSnapshotEvents() {
	bookID := uuid.NewString()
	ch := make(chan []domain.Transaction, 1)
	ch <- []domain.Transaction{{TransactionID: "t1", BookID: bookID, Type: domain.CashIn, Amount: decimal.NewFromInt(10), Details: "a"}}
	close(ch)

	suite.mockFeed.On("Subscribe", mock.Anything, bookID).
		Return((<-chan []domain.Transaction)(ch), func() {}, nil).Once()

	w := suite.performStream("/api/v1/books/" + bookID + "/feed")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "event:transactions")
	suite.Contains(w.Body.String(), "t1")
	suite.mockFeed.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestFeedStream_BookNotFound() {
	bookID := uuid.NewString()

	suite.mockFeed.On("Subscribe", mock.Anything, bookID).
		Return(nil, nil, apperrors.ErrBookNotFound).Once()

	w := suite.performStream("/api/v1/books/" + bookID + "/feed")

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
