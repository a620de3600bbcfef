package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetLedgerRows(ctx context.Context, userID string, from, to *time.Time) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}

func row(accountID, name string, accountType domain.AccountType, debit, credit string) domain.LedgerRow {
	return domain.LedgerRow{
		AccountID:   accountID,
		AccountName: name,
		AccountType: accountType,
		Debit:       decimal.RequireFromString(debit),
		Credit:      decimal.RequireFromString(credit),
	}
}

func TestBuildTrialBalance(t *testing.T) {
	bankID := uuid.NewString()
	salesID := uuid.NewString()

	t.Run("balanced ledger", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(bankID, "Bank", domain.Asset, "120", "0"),
			row(salesID, "Sales", domain.Income, "0", "120"),
		}

		report := services.BuildTrialBalance(rows)

		require.Len(t, report.Rows, 2)
		assert.True(t, report.TotalDebits.Equal(decimal.NewFromInt(120)))
		assert.True(t, report.TotalCredits.Equal(decimal.NewFromInt(120)))
		assert.True(t, report.Balanced)
		assert.True(t, report.Discrepancy.IsZero())
	})

	t.Run("groups lines by account", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(bankID, "Bank", domain.Asset, "100", "0"),
			row(bankID, "Bank", domain.Asset, "50", "0"),
			row(bankID, "Bank", domain.Asset, "0", "30"),
			row(salesID, "Sales", domain.Income, "0", "120"),
		}

		report := services.BuildTrialBalance(rows)

		require.Len(t, report.Rows, 2)
		bank := report.Rows[0] // "Bank" sorts before "Sales"
		assert.Equal(t, bankID, bank.AccountID)
		assert.True(t, bank.Debit.Equal(decimal.NewFromInt(150)))
		assert.True(t, bank.Credit.Equal(decimal.NewFromInt(30)))
	})

	t.Run("unbalanced is reported not fatal", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(bankID, "Bank", domain.Asset, "100", "0"),
			row(salesID, "Sales", domain.Income, "0", "97.50"),
		}

		report := services.BuildTrialBalance(rows)

		assert.False(t, report.Balanced)
		assert.True(t, report.Discrepancy.Equal(decimal.RequireFromString("2.50")))
	})

	t.Run("one cent discrepancy is within tolerance", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(bankID, "Bank", domain.Asset, "100", "0"),
			row(salesID, "Sales", domain.Income, "0", "99.99"),
		}

		report := services.BuildTrialBalance(rows)

		assert.True(t, report.Balanced)
	})

	t.Run("deterministic ordering", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(salesID, "Sales", domain.Income, "0", "10"),
			row(bankID, "Bank", domain.Asset, "10", "0"),
		}

		first := services.BuildTrialBalance(rows)
		second := services.BuildTrialBalance([]domain.LedgerRow{rows[1], rows[0]})

		assert.Equal(t, first.Rows, second.Rows)
		assert.Equal(t, "Bank", first.Rows[0].AccountName)
		assert.Equal(t, "Sales", first.Rows[1].AccountName)
	})

	t.Run("empty ledger", func(t *testing.T) {
		report := services.BuildTrialBalance(nil)

		assert.Empty(t, report.Rows)
		assert.True(t, report.Balanced)
	})
}

func TestBuildProfitAndLoss(t *testing.T) {
	salesID := uuid.NewString()
	rentID := uuid.NewString()
	bankID := uuid.NewString()

	t.Run("sign conventions", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(salesID, "Sales", domain.Income, "0", "500"),
			row(salesID, "Sales", domain.Income, "20", "0"), // refund
			row(rentID, "Rent", domain.Expense, "300", "0"),
			row(bankID, "Bank", domain.Asset, "180", "0"), // excluded from P&L
		}

		report := services.BuildProfitAndLoss(rows)

		require.Len(t, report.Income, 1)
		require.Len(t, report.Expenses, 1)
		assert.True(t, report.Income[0].NetAmount.Equal(decimal.NewFromInt(480)))
		assert.True(t, report.Expenses[0].NetAmount.Equal(decimal.NewFromInt(300)))
		assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(480)))
		assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(300)))
		assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(180)))
	})

	t.Run("zero net activity omitted", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(salesID, "Sales", domain.Income, "50", "50"),
			row(rentID, "Rent", domain.Expense, "300", "0"),
		}

		report := services.BuildProfitAndLoss(rows)

		assert.Empty(t, report.Income)
		require.Len(t, report.Expenses, 1)
	})

	t.Run("net loss", func(t *testing.T) {
		rows := []domain.LedgerRow{
			row(salesID, "Sales", domain.Income, "0", "100"),
			row(rentID, "Rent", domain.Expense, "250", "0"),
		}

		report := services.BuildProfitAndLoss(rows)

		assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(-150)))
	})
}

func TestBuildBalanceSheet(t *testing.T) {
	bankID := uuid.NewString()
	loanID := uuid.NewString()
	capitalID := uuid.NewString()
	salesID := uuid.NewString()

	rows := []domain.LedgerRow{
		row(bankID, "Bank", domain.Asset, "1500", "200"),
		row(loanID, "Bank Loan", domain.Liability, "100", "1000"),
		row(capitalID, "Owner Capital", domain.Equity, "0", "400"),
		row(salesID, "Sales", domain.Income, "0", "500"), // excluded from balance sheet
	}

	report := services.BuildBalanceSheet(rows)

	require.Len(t, report.Assets, 1)
	require.Len(t, report.Liabilities, 1)
	require.Len(t, report.Equity, 1)
	assert.True(t, report.Assets[0].NetAmount.Equal(decimal.NewFromInt(1300)))
	assert.True(t, report.Liabilities[0].NetAmount.Equal(decimal.NewFromInt(900)))
	assert.True(t, report.Equity[0].NetAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, report.TotalAssets.Equal(decimal.NewFromInt(1300)))
	assert.True(t, report.TotalLiabilities.Equal(decimal.NewFromInt(900)))
	assert.True(t, report.TotalEquity.Equal(decimal.NewFromInt(400)))
}

func TestReportingService_BalanceSheetIsCumulative(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	mockRepo := new(MockReportingRepository)
	service := services.NewReportingService(mockRepo)

	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	// The lower bound must stay open: balance sheet accounts carry forward.
	// The upper bound is exclusive midnight after asOf, so journals posted
	// at any time on the asOf day are still in the picture.
	queryBefore := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("GetLedgerRows", ctx, userID, (*time.Time)(nil), &queryBefore).
		Return([]domain.LedgerRow{}, nil).Once()

	_, err := service.BalanceSheet(ctx, userID, asOf)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestReportingService_TrialBalanceCoversWholeFinalDay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	mockRepo := new(MockReportingRepository)
	service := services.NewReportingService(mockRepo)

	bankID := uuid.NewString()
	salesID := uuid.NewString()
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	// A journal and its reversal, the reversal stamped mid-afternoon on the
	// report's last day. Both must be inside the queried range: the repo sees
	// an exclusive bound of midnight 1 April, and the pair cancels out.
	original := time.Date(2025, 3, 30, 9, 0, 0, 0, time.UTC)
	reversal := time.Date(2025, 3, 31, 14, 0, 0, 0, time.UTC)
	rows := []domain.LedgerRow{
		{AccountID: bankID, AccountName: "Bank", AccountType: domain.Asset,
			JournalDate: original, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: salesID, AccountName: "Sales", AccountType: domain.Income,
			JournalDate: original, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		{AccountID: bankID, AccountName: "Bank", AccountType: domain.Asset,
			JournalDate: reversal, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		{AccountID: salesID, AccountName: "Sales", AccountType: domain.Income,
			JournalDate: reversal, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
	}

	queryBefore := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("GetLedgerRows", ctx, userID, (*time.Time)(nil), &queryBefore).
		Return(rows, nil).Once()

	report, err := service.TrialBalance(ctx, userID, nil, &to)

	require.NoError(t, err)
	assert.True(t, report.Balanced)
	assert.True(t, report.TotalDebits.Equal(decimal.NewFromInt(1000)))
	assert.True(t, report.TotalCredits.Equal(decimal.NewFromInt(1000)))
	mockRepo.AssertExpectations(t)
}

func TestReportingService_ProfitAndLossIsPeriodScoped(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	mockRepo := new(MockReportingRepository)
	service := services.NewReportingService(mockRepo)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	queryBefore := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	mockRepo.On("GetLedgerRows", ctx, userID, &from, &queryBefore).
		Return([]domain.LedgerRow{}, nil).Once()

	report, err := service.ProfitAndLoss(ctx, userID, from, to)

	require.NoError(t, err)
	assert.Empty(t, report.Income)
	assert.Empty(t, report.Expenses)
	mockRepo.AssertExpectations(t)
}
