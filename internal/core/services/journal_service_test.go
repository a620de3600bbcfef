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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, userID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	args := m.Called(ctx, journal, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, original domain.Journal, reversal domain.Journal, lines []domain.JournalLine, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, original, reversal, lines, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, userID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountReader
	service         portssvc.JournalSvcFacade
	bankAccount     domain.Account
	salesAccount    domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Sales",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "Invoice payment received",
		Reference:   "INV-1001",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(120)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(120)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:  suite.bankAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, []string{suite.bankAccount.AccountID, suite.salesAccount.AccountID}).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.JournalID)
	suite.Equal(suite.userID, created.UserID)
	suite.Equal(domain.Posted, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnbalancedRejected() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "Off by more than a cent",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.RequireFromString("99.98")},
		},
	}

	created, err := suite.service.CreateJournal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.Nil(created)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownAccountRejected() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Date:        time.Now(),
		Description: "References a missing account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: unknownID, Credit: decimal.NewFromInt(50)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID: suite.bankAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, []string{suite.bankAccount.AccountID, unknownID}).Return(accountsMap, nil).Once()

	created, err := suite.service.CreateJournal(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(created)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_MirrorsLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   journalID,
		UserID:      suite.userID,
		Description: "Rent paid",
		Status:      domain.Posted,
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.bankAccount.AccountID, Credit: decimal.NewFromInt(800)},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.salesAccount.AccountID, Debit: decimal.NewFromInt(800)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, journalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(originalLines, nil).Once()

	var savedLines []domain.JournalLine
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			savedLines = args.Get(3).([]domain.JournalLine)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.userID, journalID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal(journalID, *reversal.OriginalJournalID)
	suite.Contains(reversal.Description, "Reversal of:")

	suite.Require().Len(savedLines, 2)
	suite.True(savedLines[0].Debit.Equal(originalLines[0].Credit))
	suite.True(savedLines[0].Credit.Equal(originalLines[0].Debit))
	suite.True(savedLines[1].Debit.Equal(originalLines[1].Credit))
	suite.True(savedLines[1].Credit.Equal(originalLines[1].Debit))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversedRejected() {
	ctx := context.Background()
	journalID := uuid.NewString()
	original := &domain.Journal{
		JournalID: journalID,
		UserID:    suite.userID,
		Status:    domain.Reversed,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.userID, journalID).Return(original, nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.userID, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(reversal)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

// --- Line validation ---

func TestValidateJournalLines(t *testing.T) {
	acct := uuid.NewString()
	line := func(debit, credit string) domain.JournalLine {
		return domain.JournalLine{
			AccountID: acct,
			Debit:     decimal.RequireFromString(debit),
			Credit:    decimal.RequireFromString(credit),
		}
	}

	testCases := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr error
	}{
		{
			name:    "no lines",
			lines:   []domain.JournalLine{},
			wantErr: apperrors.ErrEmptyJournal,
		},
		{
			name:    "both debit and credit set",
			lines:   []domain.JournalLine{line("10", "10")},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name:    "neither debit nor credit set",
			lines:   []domain.JournalLine{line("0", "0")},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name:    "negative debit",
			lines:   []domain.JournalLine{line("-5", "0"), line("0", "5")},
			wantErr: apperrors.ErrInvalidLine,
		},
		{
			name:    "unbalanced beyond tolerance",
			lines:   []domain.JournalLine{line("100", "0"), line("0", "99.98")},
			wantErr: apperrors.ErrUnbalanced,
		},
		{
			name:  "balanced",
			lines: []domain.JournalLine{line("100", "0"), line("0", "100")},
		},
		{
			name:  "one cent apart is within tolerance",
			lines: []domain.JournalLine{line("100", "0"), line("0", "99.99")},
		},
		{
			name: "multi-line split",
			lines: []domain.JournalLine{
				line("60", "0"),
				line("40", "0"),
				line("0", "100"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.ValidateJournalLines(tc.lines)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
