package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/handlers"
	"github.com/ledgerline/ledgerline_app/internal/middleware"
)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ImportTransactions(ctx context.Context, userID string, req dto.ImportBankTransactionsRequest) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}
func (m *MockReconciliationService) ListTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, userID, reconciled, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}
func (m *MockReconciliationService) SuggestMatches(ctx context.Context, userID, transactionID string) ([]domain.MatchSuggestion, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchSuggestion), args.Error(1)
}
func (m *MockReconciliationService) CommitMatch(ctx context.Context, userID, transactionID string, targetType domain.MatchTargetType, targetID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, transactionID, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Test Suite ---
type ReconciliationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReconciliationService
	jwtSecret   string
}

func (suite *ReconciliationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockReconciliationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterReconciliationRoutes(v1, suite.mockService)
}

// --- Test Cases ---

func (suite *ReconciliationHandlerTestSuite) TestSuggestMatches_ReturnsSuggestions() {
	userID := uuid.NewString()
	txnID := uuid.NewString()
	invoiceID := uuid.NewString()

	suggestions := []domain.MatchSuggestion{
		{
			TransactionID:    txnID,
			TargetType:       domain.MatchInvoice,
			TargetID:         invoiceID,
			TargetNumber:     "INV-1001",
			TargetName:       "Acme Ltd",
			TargetTotal:      decimal.RequireFromString("120.00"),
			AmountDifference: decimal.Zero,
			MatchCriteria:    []string{domain.CriterionAmount},
		},
	}
	suite.mockService.On("SuggestMatches", mock.Anything, userID, txnID).
		Return(suggestions, nil).Once()

	w := authedRequest(suite.T(), suite.router, suite.jwtSecret, http.MethodGet, "/api/v1/bank-transactions/"+txnID+"/suggestions", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp []domain.MatchSuggestion
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.Equal(invoiceID, resp[0].TargetID)
	suite.Equal([]string{domain.CriterionAmount}, resp[0].MatchCriteria)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestCommitMatch_Success() {
	userID := uuid.NewString()
	txnID := uuid.NewString()
	invoiceID := uuid.NewString()

	reconciledTxn := &domain.BankTransaction{
		TransactionID: txnID,
		UserID:        userID,
		Date:          time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		Description:   "BACS ACME LTD",
		Amount:        decimal.RequireFromString("120.00"),
		Reconciled:    true,
		InvoiceID:     &invoiceID,
	}
	suite.mockService.On("CommitMatch", mock.Anything, userID, txnID, domain.MatchInvoice, invoiceID).
		Return(reconciledTxn, nil).Once()

	w := authedRequest(suite.T(), suite.router, suite.jwtSecret, http.MethodPost, "/api/v1/bank-transactions/"+txnID+"/match",
		dto.CommitMatchRequest{TargetType: domain.MatchInvoice, TargetID: invoiceID}, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BankTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Reconciled)
	suite.Require().NotNil(resp.InvoiceID)
	suite.Equal(invoiceID, *resp.InvoiceID)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestCommitMatch_AlreadyReconciledIsConflict() {
	userID := uuid.NewString()
	txnID := uuid.NewString()
	billID := uuid.NewString()

	suite.mockService.On("CommitMatch", mock.Anything, userID, txnID, domain.MatchBill, billID).
		Return(nil, apperrors.ErrAlreadyReconciled).Once()

	w := authedRequest(suite.T(), suite.router, suite.jwtSecret, http.MethodPost, "/api/v1/bank-transactions/"+txnID+"/match",
		dto.CommitMatchRequest{TargetType: domain.MatchBill, TargetID: billID}, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReconciliationHandlerTestSuite) TestImportTransactions_EmptyBatchIsBadRequest() {
	userID := uuid.NewString()

	w := authedRequest(suite.T(), suite.router, suite.jwtSecret, http.MethodPost, "/api/v1/bank-transactions/import",
		map[string]any{"transactions": []any{}}, userID)

	// binding:"required" rejects the empty slice before the service is reached
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ImportTransactions")
}

// --- Run Test Suite ---
func TestReconciliationHandler(t *testing.T) {
	suite.Run(t, new(ReconciliationHandlerTestSuite))
}
