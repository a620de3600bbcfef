package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
)

// reportingRepository supplies the flat ledger rows every report fold scans.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetLedgerRows retrieves journal lines joined to their account and journal
// date. Nil bounds leave that side of the range open; from is inclusive and
// before is exclusive, so callers pass midnight after the last day they want.
// Reversal journals and their originals both stay in scope: they cancel out
// in the folds, which is exactly what a correction should do.
func (r *reportingRepository) GetLedgerRows(ctx context.Context, userID string, from, before *time.Time) ([]domain.LedgerRow, error) {
	query := `
		SELECT
			a.account_id,
			a.name AS account_name,
			a.account_type,
			j.journal_date,
			l.debit,
			l.credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE j.user_id = $1
	`
	args := []any{userID}

	if from != nil {
		query += fmt.Sprintf(` AND j.journal_date >= $%d`, len(args)+1)
		args = append(args, *from)
	}
	if before != nil {
		query += fmt.Sprintf(` AND j.journal_date < $%d`, len(args)+1)
		args = append(args, *before)
	}
	query += ` ORDER BY j.journal_date, l.line_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger rows: %w", err)
	}
	defer rows.Close()

	var result []domain.LedgerRow
	for rows.Next() {
		var row domain.LedgerRow
		var accountType string
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountName,
			&accountType,
			&row.JournalDate,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	if result == nil {
		result = []domain.LedgerRow{}
	}
	return result, nil
}
