package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/core/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) FindBankTransactionByID(ctx context.Context, userID, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListBankTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, userID, reconciled, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) SaveBankTransactions(ctx context.Context, txns []domain.BankTransaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) MarkReconciled(ctx context.Context, userID, transactionID string, invoiceID, billID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, transactionID, invoiceID, billID, updatedBy, updatedAt)
	return args.Error(0)
}

func txnWith(amount, description string) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: uuid.NewString(),
		Date:          time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Description:   description,
		Amount:        decimal.RequireFromString(amount),
	}
}

func openInvoice(number, customer, total string) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    uuid.NewString(),
		Number:       number,
		CustomerName: customer,
		Total:        decimal.RequireFromString(total),
		Status:       domain.InvoiceSent,
	}
}

func openBill(reference, supplier, total string) domain.Bill {
	return domain.Bill{
		BillID:       uuid.NewString(),
		Reference:    reference,
		SupplierName: supplier,
		Total:        decimal.RequireFromString(total),
		Status:       domain.BillReceived,
	}
}

func TestSuggestMatches(t *testing.T) {
	t.Run("exact amount match against invoice", func(t *testing.T) {
		txn := txnWith("120.00", "FPS CREDIT 0422")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Len(t, got, 1)
		assert.Equal(t, domain.MatchInvoice, got[0].TargetType)
		assert.Equal(t, inv.InvoiceID, got[0].TargetID)
		assert.Equal(t, []string{domain.CriterionAmount}, got[0].MatchCriteria)
		assert.True(t, got[0].AmountDifference.IsZero())
	})

	t.Run("amount within one cent matches", func(t *testing.T) {
		txn := txnWith("119.99", "FPS CREDIT 0422")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Len(t, got, 1)
		assert.True(t, got[0].AmountDifference.Equal(decimal.RequireFromString("0.01")))
	})

	t.Run("amount two cents off does not match", func(t *testing.T) {
		txn := txnWith("119.98", "FPS CREDIT 0422")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Empty(t, got)
	})

	t.Run("invoice number in description matches regardless of amount", func(t *testing.T) {
		txn := txnWith("75.00", "BACS inv-1001 part payment")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Len(t, got, 1)
		assert.Equal(t, []string{domain.CriterionReference}, got[0].MatchCriteria)
	})

	t.Run("customer name in description matches case-insensitively", func(t *testing.T) {
		txn := txnWith("75.00", "TRANSFER FROM ACME LTD")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Len(t, got, 1)
	})

	t.Run("amount and reference both recorded", func(t *testing.T) {
		txn := txnWith("120.00", "FPS INV-1001 Acme")
		inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, nil)

		assert.Len(t, got, 1)
		assert.Equal(t, []string{domain.CriterionAmount, domain.CriterionReference}, got[0].MatchCriteria)
	})

	t.Run("negative amount matches bills on absolute value", func(t *testing.T) {
		txn := txnWith("-75.00", "DD OFFICE SUPPLIES")
		bill := openBill("SUP-778", "Office Supplies Ltd", "75.00")

		got := services.SuggestMatches(txn, nil, []domain.Bill{bill})

		assert.Len(t, got, 1)
		assert.Equal(t, domain.MatchBill, got[0].TargetType)
		assert.Equal(t, bill.BillID, got[0].TargetID)
	})

	t.Run("positive amount never matches bills", func(t *testing.T) {
		txn := txnWith("75.00", "DD OFFICE SUPPLIES LTD")
		bill := openBill("SUP-778", "Office Supplies Ltd", "75.00")

		got := services.SuggestMatches(txn, nil, []domain.Bill{bill})

		assert.Empty(t, got)
	})

	t.Run("zero amount yields no suggestions", func(t *testing.T) {
		txn := txnWith("0", "BALANCE ADJUSTMENT")
		inv := openInvoice("INV-1001", "Acme Ltd", "0.00")
		bill := openBill("SUP-778", "Office Supplies Ltd", "0.00")

		got := services.SuggestMatches(txn, []domain.Invoice{inv}, []domain.Bill{bill})

		assert.Empty(t, got)
	})

	t.Run("multiple candidates all reported", func(t *testing.T) {
		txn := txnWith("120.00", "FPS CREDIT")
		first := openInvoice("INV-1001", "Acme Ltd", "120.00")
		second := openInvoice("INV-1002", "Bravo Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{first, second}, nil)

		assert.Len(t, got, 2)
	})

	t.Run("amount matches listed before reference-only matches", func(t *testing.T) {
		// The older invoice only matches on its number appearing in the
		// description; the newer one matches the amount exactly. The amount
		// match leads even though the candidates arrive date-ordered.
		txn := txnWith("120.00", "BACS INV-1001")
		referenceOnly := openInvoice("INV-1001", "Acme Ltd", "75.00")
		exactAmount := openInvoice("INV-1002", "Bravo Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{referenceOnly, exactAmount}, nil)

		assert.Len(t, got, 2)
		assert.Equal(t, exactAmount.InvoiceID, got[0].TargetID)
		assert.Equal(t, []string{domain.CriterionAmount}, got[0].MatchCriteria)
		assert.Equal(t, referenceOnly.InvoiceID, got[1].TargetID)
		assert.Equal(t, []string{domain.CriterionReference}, got[1].MatchCriteria)
	})

	t.Run("amount matches keep date order among themselves", func(t *testing.T) {
		txn := txnWith("120.00", "FPS CREDIT")
		older := openInvoice("INV-1001", "Acme Ltd", "120.00")
		newer := openInvoice("INV-1002", "Bravo Ltd", "120.00")

		got := services.SuggestMatches(txn, []domain.Invoice{older, newer}, nil)

		assert.Len(t, got, 2)
		assert.Equal(t, older.InvoiceID, got[0].TargetID)
		assert.Equal(t, newer.InvoiceID, got[1].TargetID)
	})
}

// --- Test Suite Setup ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockBankTxnRepo *MockBankTransactionRepository
	mockInvoiceRepo *MockInvoiceRepository
	mockBillRepo    *MockBillRepository
	service         portssvc.ReconciliationSvcFacade
	userID          string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockBankTxnRepo = new(MockBankTransactionRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.service = services.NewReconciliationService(suite.mockBankTxnRepo, suite.mockInvoiceRepo, suite.mockBillRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestImportTransactions_AssignsIDsAndOwner() {
	ctx := context.Background()
	req := dto.ImportBankTransactionsRequest{
		Transactions: []dto.BankTransactionRecord{
			{Date: time.Now(), Description: "FPS CREDIT", Amount: decimal.NewFromInt(120)},
			{Date: time.Now(), Description: "DD RENT", Amount: decimal.NewFromInt(-800)},
		},
	}

	suite.mockBankTxnRepo.On("SaveBankTransactions", ctx, mock.AnythingOfType("[]domain.BankTransaction")).Return(nil).Once()

	txns, err := suite.service.ImportTransactions(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	for _, txn := range txns {
		suite.NotEmpty(txn.TransactionID)
		suite.Equal(suite.userID, txn.UserID)
		suite.False(txn.Reconciled)
	}
	suite.mockBankTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestImportTransactions_EmptyBatchRejected() {
	ctx := context.Background()

	txns, err := suite.service.ImportTransactions(ctx, suite.userID, dto.ImportBankTransactionsRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txns)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_MoneyInFetchesInvoicesOnly() {
	ctx := context.Background()
	txn := txnWith("120.00", "FPS CREDIT INV-1001")
	txn.UserID = suite.userID

	suite.mockBankTxnRepo.On("FindBankTransactionByID", ctx, suite.userID, txn.TransactionID).Return(&txn, nil).Once()
	suite.mockInvoiceRepo.On("ListOpenInvoices", ctx, suite.userID).
		Return([]domain.Invoice{openInvoice("INV-1001", "Acme Ltd", "120.00")}, nil).Once()

	got, err := suite.service.SuggestMatches(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "ListOpenBills", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSuggestMatches_ReconciledTransactionYieldsNothing() {
	ctx := context.Background()
	txn := txnWith("120.00", "FPS CREDIT")
	txn.UserID = suite.userID
	txn.Reconciled = true

	suite.mockBankTxnRepo.On("FindBankTransactionByID", ctx, suite.userID, txn.TransactionID).Return(&txn, nil).Once()

	got, err := suite.service.SuggestMatches(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ListOpenInvoices", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestCommitMatch_LinksInvoice() {
	ctx := context.Background()
	txn := txnWith("120.00", "FPS CREDIT")
	txn.UserID = suite.userID
	inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

	suite.mockBankTxnRepo.On("FindBankTransactionByID", ctx, suite.userID, txn.TransactionID).Return(&txn, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, inv.InvoiceID).Return(&inv, nil, nil).Once()
	suite.mockBankTxnRepo.On("MarkReconciled", ctx, suite.userID, txn.TransactionID, &inv.InvoiceID, (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.CommitMatch(ctx, suite.userID, txn.TransactionID, domain.MatchInvoice, inv.InvoiceID)

	suite.Require().NoError(err)
	suite.True(updated.Reconciled)
	suite.Require().NotNil(updated.InvoiceID)
	suite.Equal(inv.InvoiceID, *updated.InvoiceID)
	suite.Nil(updated.BillID)
	suite.mockBankTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCommitMatch_AlreadyReconciledFailsUnchanged() {
	ctx := context.Background()
	existingInvoiceID := uuid.NewString()
	txn := txnWith("120.00", "FPS CREDIT")
	txn.UserID = suite.userID
	txn.Reconciled = true
	txn.InvoiceID = &existingInvoiceID

	suite.mockBankTxnRepo.On("FindBankTransactionByID", ctx, suite.userID, txn.TransactionID).Return(&txn, nil).Once()

	updated, err := suite.service.CommitMatch(ctx, suite.userID, txn.TransactionID, domain.MatchInvoice, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReconciled)
	suite.Nil(updated)
	// The original link is untouched.
	suite.Equal(existingInvoiceID, *txn.InvoiceID)
	suite.mockBankTxnRepo.AssertNotCalled(suite.T(), "MarkReconciled", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestCommitMatch_StoreConflictSurfaced() {
	ctx := context.Background()
	txn := txnWith("120.00", "FPS CREDIT")
	txn.UserID = suite.userID
	inv := openInvoice("INV-1001", "Acme Ltd", "120.00")

	suite.mockBankTxnRepo.On("FindBankTransactionByID", ctx, suite.userID, txn.TransactionID).Return(&txn, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.userID, inv.InvoiceID).Return(&inv, nil, nil).Once()
	// A concurrent commit won between our read and our write.
	suite.mockBankTxnRepo.On("MarkReconciled", ctx, suite.userID, txn.TransactionID, &inv.InvoiceID, (*string)(nil), suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrAlreadyReconciled).Once()

	updated, err := suite.service.CommitMatch(ctx, suite.userID, txn.TransactionID, domain.MatchInvoice, inv.InvoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReconciled)
	suite.Nil(updated)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
