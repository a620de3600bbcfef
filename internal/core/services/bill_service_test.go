package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/core/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// --- Mock BillRepository ---
type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.BillRepositoryFacade = (*MockBillRepository)(nil)

func (m *MockBillRepository) FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, []domain.BillLine, error) {
	args := m.Called(ctx, userID, billID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var lines []domain.BillLine
	if args.Get(1) != nil {
		lines = args.Get(1).([]domain.BillLine)
	}
	return args.Get(0).(*domain.Bill), lines, args.Error(2)
}

func (m *MockBillRepository) ListBills(ctx context.Context, userID string, limit, offset int) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListOpenBills(ctx context.Context, userID string) ([]domain.Bill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill, lines []domain.BillLine) error {
	args := m.Called(ctx, bill, lines)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBillStatus(ctx context.Context, userID, billID string, status domain.BillStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, billID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo    *MockBillRepository
	mockTaxCodeRepo *MockTaxCodeReader
	service         portssvc.BillSvcFacade
	standardRate    domain.TaxCode
	userID          string
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockTaxCodeRepo = new(MockTaxCodeReader)
	suite.service = services.NewBillService(suite.mockBillRepo, suite.mockTaxCodeRepo)

	suite.userID = uuid.NewString()
	suite.standardRate = domain.TaxCode{
		TaxCodeID: uuid.NewString(),
		Name:      "Standard Rate",
		Rate:      decimal.NewFromInt(20),
	}
}

// --- Test Cases ---

func (suite *BillServiceTestSuite) TestCreateBill_ComputesLinesAndTotals() {
	ctx := context.Background()
	req := dto.CreateBillRequest{
		Reference:    "SUP-778",
		SupplierName: "Office Supplies Ltd",
		IssueDate:    time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Lines: []dto.DocumentLineRequest{
			{
				Description: "Paper",
				Quantity:    decimal.NewFromInt(5),
				UnitPrice:   decimal.RequireFromString("12.50"),
				TaxCodeID:   &suite.standardRate.TaxCodeID,
			},
		},
	}

	suite.mockTaxCodeRepo.On("FindTaxCodesByIDs", ctx, []string{suite.standardRate.TaxCodeID}).
		Return(map[string]domain.TaxCode{suite.standardRate.TaxCodeID: suite.standardRate}, nil).Once()
	suite.mockBillRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill"), mock.AnythingOfType("[]domain.BillLine")).Return(nil).Once()

	bill, lines, err := suite.service.CreateBill(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.True(lines[0].LineTotal.Equal(decimal.RequireFromString("62.50")))
	suite.True(lines[0].VATAmount.Equal(decimal.RequireFromString("12.50")))
	suite.True(bill.Subtotal.Equal(decimal.RequireFromString("62.50")))
	suite.True(bill.Total.Equal(decimal.NewFromInt(75)))
	suite.Equal(domain.BillDraft, bill.Status)

	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_TotalsMismatchRejected() {
	ctx := context.Background()
	wrongSubtotal := decimal.NewFromInt(60)
	req := dto.CreateBillRequest{
		Reference:    "SUP-779",
		SupplierName: "Office Supplies Ltd",
		IssueDate:    time.Now(),
		DueDate:      time.Now(),
		Lines: []dto.DocumentLineRequest{
			{
				Description: "Paper",
				Quantity:    decimal.NewFromInt(5),
				UnitPrice:   decimal.RequireFromString("12.50"),
			},
		},
		Totals: &dto.HeaderTotals{Subtotal: &wrongSubtotal},
	}

	bill, _, err := suite.service.CreateBill(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTotalsMismatch)
	suite.Nil(bill)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCreateBill_EmptyLinesRejected() {
	ctx := context.Background()
	req := dto.CreateBillRequest{
		Reference:    "SUP-780",
		SupplierName: "Office Supplies Ltd",
		IssueDate:    time.Now(),
		DueDate:      time.Now(),
	}

	bill, _, err := suite.service.CreateBill(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(bill)
}

func (suite *BillServiceTestSuite) TestUpdateBillStatus_InvalidTransitionRejected() {
	ctx := context.Background()
	billID := uuid.NewString()
	existing := &domain.Bill{
		BillID: billID,
		UserID: suite.userID,
		Status: domain.BillVoid,
	}

	suite.mockBillRepo.On("FindBillByID", ctx, suite.userID, billID).Return(existing, nil, nil).Once()

	updated, err := suite.service.UpdateBillStatus(ctx, suite.userID, billID, domain.BillPaid)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "UpdateBillStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
