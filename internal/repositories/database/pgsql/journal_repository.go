package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_app/internal/models"
	"github.com/ledgerline/ledgerline_app/internal/utils/mapping"
	"github.com/ledgerline/ledgerline_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, user_id, journal_date, reference, description, status, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

const insertJournalQuery = `
	INSERT INTO journals (` + journalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

const insertJournalLineQuery = `
	INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.UserID,
		&m.JournalDate,
		&m.Reference,
		&m.Description,
		&m.Status,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func execInsertJournal(ctx context.Context, tx pgx.Tx, m models.Journal) error {
	_, err := tx.Exec(ctx, insertJournalQuery,
		m.JournalID,
		m.UserID,
		m.JournalDate,
		m.Reference,
		m.Description,
		m.Status,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func queueInsertLines(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(insertJournalLineQuery,
			m.LineID,
			m.JournalID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveJournal inserts the journal header and all its lines in one database
// transaction, so a header without balanced lines never becomes visible.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := execInsertJournal(ctx, tx, mapping.ToModelJournal(journal)); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueInsertLines(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert journal lines for "+journal.JournalID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close journal line batch", err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversal inserts the reversing journal with its lines and links the
// original, atomically.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, original domain.Journal, reversal domain.Journal, lines []domain.JournalLine, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := execInsertJournal(ctx, tx, mapping.ToModelJournal(reversal)); err != nil {
		return apperrors.NewAppError(500, "failed to insert reversing journal "+reversal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueInsertLines(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert reversal lines for "+reversal.JournalID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close reversal line batch", err)
	}

	// Only an unreversed posted journal can gain a reversal link.
	linkQuery := `
		UPDATE journals
		SET status = $1, reversing_journal_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $5 AND user_id = $6 AND status = $7 AND reversing_journal_id IS NULL;
	`
	tag, err := tx.Exec(ctx, linkQuery,
		models.Reversed,
		reversal.JournalID,
		updatedAt,
		updatedBy,
		original.JournalID,
		original.UserID,
		models.Posted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal reversed "+original.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %s is no longer reversible", apperrors.ErrValidation, original.JournalID)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal owned by userID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1 AND user_id = $2;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// FindLinesByJournalID retrieves all lines belonging to one journal.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// ListJournals retrieves a page of journals using token-based pagination
// keyed on (journal_date, created_at), newest first.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE user_id = $1`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, journalDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY journal_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	var ms []models.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate journal rows: %w", err)
	}

	var newNextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		newNextToken = &token
	}

	journals := make([]domain.Journal, len(ms))
	for i, m := range ms {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, newNextToken, nil
}
