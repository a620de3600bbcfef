package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/utils/accounting"
)

// journalService provides journal posting, retrieval and reversal.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new JournalSvcFacade implementation.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ValidateJournalLines enforces the ledger's write-time invariants on a set
// of lines:
//   - at least one line (ErrEmptyJournal),
//   - each line has exactly one of debit/credit strictly positive and the
//     other exactly zero (ErrInvalidLine),
//   - |sum(debit) - sum(credit)| within tolerance (ErrUnbalanced).
//
// It must run inside whatever transaction boundary commits the journal, so a
// header without balanced lines is never visible to readers.
func ValidateJournalLines(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return apperrors.ErrEmptyJournal
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() || hasDebit == hasCredit {
			return fmt.Errorf("%w: account %s has debit %s and credit %s",
				apperrors.ErrInvalidLine, line.AccountID, line.Debit, line.Credit)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !accounting.WithinTolerance(totalDebit, totalCredit) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return nil
}

// CreateJournal validates and persists a balanced journal with its lines.
func (s *journalService) CreateJournal(ctx context.Context, userID string, req dto.CreateJournalRequest) (*domain.Journal, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: journalID,
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := ValidateJournalLines(lines); err != nil {
		s.LogDebug(ctx, "Journal validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	// Every referenced account must exist and belong to the caller.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up accounts for journal")
		return nil, fmt.Errorf("failed to look up accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}

	journal := domain.Journal{
		JournalID:   journalID,
		UserID:      userID,
		JournalDate: req.Date,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journalID),
		slog.Int("line_count", len(lines)))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, []domain.JournalLine, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, userID, journalID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	return journal, lines, nil
}

func (s *journalService) ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.journalRepo.ListJournals(ctx, userID, limit, nextToken)
}

// ReverseJournal creates a mirrored journal for a posted journal: every
// debit becomes a credit and vice versa. The original is marked reversed and
// both journals are linked. The original's lines are untouched; corrections
// are always new postings.
func (s *journalService) ReverseJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	original, err := s.journalRepo.FindJournalByID(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s is %s, only posted journals can be reversed",
			apperrors.ErrValidation, journalID, original.Status)
	}

	originalLines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			JournalID: reversalID,
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	// A mirror of a balanced journal is balanced, but the invariant is
	// checked again before anything is written.
	if err := ValidateJournalLines(reversalLines); err != nil {
		return nil, err
	}

	reversal := domain.Journal{
		JournalID:         reversalID,
		UserID:            userID,
		JournalDate:       now,
		Reference:         original.Reference,
		Description:       "Reversal of: " + original.Description,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, *original, reversal, reversalLines, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to save reversal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversing_journal_id", reversalID))
	return &reversal, nil
}
