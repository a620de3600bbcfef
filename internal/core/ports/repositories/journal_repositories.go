package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error)

	// FindLinesByJournalID retrieves all lines associated with a single journal.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves a paginated list of journals using token-based
	// pagination. It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and its lines in one database
	// transaction. A journal header without its balanced lines must never
	// become visible to readers.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error

	// SaveReversal persists the reversing journal and its lines, and marks
	// the original as reversed, in one database transaction.
	SaveReversal(ctx context.Context, original domain.Journal, reversal domain.Journal, lines []domain.JournalLine, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
