package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/core/services"
)

// --- Mock HMRCGateway ---
type MockHMRCGateway struct {
	mock.Mock
}

var _ services.HMRCGateway = (*MockHMRCGateway)(nil)

func (m *MockHMRCGateway) FetchObligations(ctx context.Context) ([]domain.VATObligation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATObligation), args.Error(1)
}

func (m *MockHMRCGateway) SubmitVATReturn(ctx context.Context, ret domain.VATReturn) (*domain.VATSubmissionReceipt, error) {
	args := m.Called(ctx, ret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATSubmissionReceipt), args.Error(1)
}

func invoiceWith(total, vat string) domain.Invoice {
	return domain.Invoice{
		InvoiceID: uuid.NewString(),
		Total:     decimal.RequireFromString(total),
		VATAmount: decimal.RequireFromString(vat),
	}
}

func billWith(total, vat string) domain.Bill {
	return domain.Bill{
		BillID:    uuid.NewString(),
		Total:     decimal.RequireFromString(total),
		VATAmount: decimal.RequireFromString(vat),
	}
}

func TestCalculateVATReturn(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("standard quarter", func(t *testing.T) {
		invoices := []domain.Invoice{
			invoiceWith("240.00", "40.00"),
			invoiceWith("120.00", "20.00"),
		}
		bills := []domain.Bill{
			billWith("90.00", "15.00"),
		}

		ret := services.CalculateVATReturn(invoices, bills, from, to)

		assert.True(t, ret.Box1.Equal(decimal.RequireFromString("60.00")), "box1: %s", ret.Box1)
		assert.True(t, ret.Box2.IsZero())
		assert.True(t, ret.Box3.Equal(decimal.RequireFromString("60.00")))
		assert.True(t, ret.Box4.Equal(decimal.RequireFromString("15.00")))
		assert.True(t, ret.Box5.Equal(decimal.RequireFromString("45.00")))
		assert.True(t, ret.Box6.Equal(decimal.RequireFromString("300.00")), "box6: %s", ret.Box6)
		assert.True(t, ret.Box7.Equal(decimal.RequireFromString("75.00")))
		assert.True(t, ret.Box8.IsZero())
		assert.True(t, ret.Box9.IsZero())
	})

	t.Run("reclaim period goes negative", func(t *testing.T) {
		invoices := []domain.Invoice{invoiceWith("60.00", "10.00")}
		bills := []domain.Bill{billWith("600.00", "100.00")}

		ret := services.CalculateVATReturn(invoices, bills, from, to)

		assert.True(t, ret.Box5.Equal(decimal.RequireFromString("-90.00")))
	})

	t.Run("no documents", func(t *testing.T) {
		ret := services.CalculateVATReturn(nil, nil, from, to)

		assert.True(t, ret.Box1.IsZero())
		assert.True(t, ret.Box5.IsZero())
		assert.True(t, ret.Box6.IsZero())
		assert.True(t, ret.Box7.IsZero())
	})

	t.Run("box identities always hold", func(t *testing.T) {
		invoices := []domain.Invoice{
			invoiceWith("133.33", "22.22"),
			invoiceWith("19.99", "3.33"),
		}
		bills := []domain.Bill{
			billWith("47.47", "7.91"),
		}

		ret := services.CalculateVATReturn(invoices, bills, from, to)

		assert.True(t, ret.Box3.Equal(ret.Box1.Add(ret.Box2)))
		assert.True(t, ret.Box5.Equal(ret.Box3.Sub(ret.Box4)))
	})

	t.Run("idempotent", func(t *testing.T) {
		invoices := []domain.Invoice{invoiceWith("240.00", "40.00")}
		bills := []domain.Bill{billWith("90.00", "15.00")}

		first := services.CalculateVATReturn(invoices, bills, from, to)
		second := services.CalculateVATReturn(invoices, bills, from, to)

		assert.Equal(t, first, second)
	})
}

// --- Test Suite Setup ---
type VATServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockBillRepo    *MockBillRepository
	mockHMRC        *MockHMRCGateway
	service         portssvc.VATSvcFacade
	userID          string
	from            time.Time
	to              time.Time
	queryBefore     time.Time
}

func (suite *VATServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockHMRC = new(MockHMRCGateway)
	suite.service = services.NewVATService(suite.mockInvoiceRepo, suite.mockBillRepo, suite.mockHMRC)

	suite.userID = uuid.NewString()
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	// Repositories receive the exclusive bound covering all of the last day.
	suite.queryBefore = suite.to.AddDate(0, 0, 1)
}

// --- Test Cases ---

func (suite *VATServiceTestSuite) TestSubmitReturn_FinalisesAndReturnsReceipt() {
	ctx := context.Background()
	invoices := []domain.Invoice{invoiceWith("240.00", "40.00")}
	bills := []domain.Bill{billWith("90.00", "15.00")}

	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, suite.userID, suite.from, suite.queryBefore).Return(invoices, nil).Once()
	suite.mockBillRepo.On("ListBillsByDateRange", ctx, suite.userID, suite.from, suite.queryBefore).Return(bills, nil).Once()

	receipt := &domain.VATSubmissionReceipt{
		ProcessingDate:   time.Now().UTC(),
		FormBundleNumber: "256660290587",
	}
	var submitted domain.VATReturn
	suite.mockHMRC.On("SubmitVATReturn", ctx, mock.AnythingOfType("domain.VATReturn")).
		Run(func(args mock.Arguments) {
			submitted = args.Get(1).(domain.VATReturn)
		}).Return(receipt, nil).Once()

	ret, gotReceipt, err := suite.service.SubmitReturn(ctx, suite.userID, "25A1", suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Equal("25A1", ret.PeriodKey)
	suite.True(ret.Finalised)
	suite.True(ret.Box5.Equal(decimal.RequireFromString("25.00")))
	suite.Equal(receipt, gotReceipt)
	suite.True(submitted.Finalised)
	suite.Equal("25A1", submitted.PeriodKey)

	suite.mockHMRC.AssertExpectations(suite.T())
}

func (suite *VATServiceTestSuite) TestSubmitReturn_FailureIsNotRetried() {
	ctx := context.Background()
	suite.mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, suite.userID, suite.from, suite.queryBefore).Return([]domain.Invoice{}, nil).Once()
	suite.mockBillRepo.On("ListBillsByDateRange", ctx, suite.userID, suite.from, suite.queryBefore).Return([]domain.Bill{}, nil).Once()

	submitErr := errors.New("503 service unavailable")
	suite.mockHMRC.On("SubmitVATReturn", ctx, mock.AnythingOfType("domain.VATReturn")).Return(nil, submitErr).Once()

	ret, receipt, err := suite.service.SubmitReturn(ctx, suite.userID, "25A1", suite.from, suite.to)

	suite.Require().Error(err)
	suite.ErrorIs(err, submitErr)
	suite.Nil(ret)
	suite.Nil(receipt)
	// Exactly one attempt: a duplicated filing is worse than a reported failure.
	suite.mockHMRC.AssertNumberOfCalls(suite.T(), "SubmitVATReturn", 1)
}

func (suite *VATServiceTestSuite) TestListObligations_PassesThrough() {
	ctx := context.Background()
	obligations := []domain.VATObligation{
		{
			PeriodKey: "25A1",
			Start:     suite.from,
			End:       suite.to,
			Due:       suite.to.AddDate(0, 1, 7),
			Status:    domain.ObligationOpen,
		},
	}
	suite.mockHMRC.On("FetchObligations", ctx).Return(obligations, nil).Once()

	got, err := suite.service.ListObligations(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(obligations, got)
}

func TestVATServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VATServiceTestSuite))
}

func TestVATService_CalculateReturnCoversWholeLastDay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	mockInvoiceRepo := new(MockInvoiceRepository)
	mockBillRepo := new(MockBillRepository)
	service := services.NewVATService(mockInvoiceRepo, mockBillRepo, new(MockHMRCGateway))

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	// Document dates carry a time of day, so an invoice issued at 14:00 on
	// 30 June belongs to the period. The repositories must be queried up to
	// (but excluding) midnight of 1 July, not midnight of 30 June.
	queryBefore := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	mockInvoiceRepo.On("ListInvoicesByDateRange", ctx, userID, from, queryBefore).Return([]domain.Invoice{}, nil).Once()
	mockBillRepo.On("ListBillsByDateRange", ctx, userID, from, queryBefore).Return([]domain.Bill{}, nil).Once()

	ret, err := service.CalculateReturn(ctx, userID, from, to)

	require.NoError(t, err)
	assert.Equal(t, from, ret.From)
	assert.Equal(t, to, ret.To)
	mockInvoiceRepo.AssertExpectations(t)
	mockBillRepo.AssertExpectations(t)
}
