package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// JournalSvcFacade defines operations on journals and their lines.
type JournalSvcFacade interface {
	// CreateJournal validates and persists a balanced journal with its lines.
	CreateJournal(ctx context.Context, userID string, req dto.CreateJournalRequest) (*domain.Journal, error)

	// GetJournalByID retrieves a journal and its lines.
	GetJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, []domain.JournalLine, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// ReverseJournal creates a mirrored correcting journal for a posted
	// journal. Posted lines are never edited in place.
	ReverseJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error)
}
