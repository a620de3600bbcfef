package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_app/internal/models"
	"github.com/ledgerline/ledgerline_app/internal/utils/mapping"
)

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bill data.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

const billColumns = `bill_id, user_id, reference, supplier_name, issue_date, due_date, status, subtotal, vat_amount, total, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (models.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.UserID,
		&m.Reference,
		&m.SupplierName,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.VATAmount,
		&m.Total,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBillRepository) queryBills(ctx context.Context, query string, args ...any) ([]domain.Bill, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var ms []models.Bill
	for rows.Next() {
		m, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill rows: %w", err)
	}
	return mapping.ToDomainBillSlice(ms), nil
}

// SaveBill inserts the header and all lines in one database transaction.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill, lines []domain.BillLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBill(bill)
	headerQuery := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.BillID,
		m.UserID,
		m.Reference,
		m.SupplierName,
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Subtotal,
		m.VATAmount,
		m.Total,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: bill reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return apperrors.NewAppError(500, "failed to insert bill "+m.BillID, err)
	}

	lineQuery := `
		INSERT INTO bill_lines (line_id, bill_id, description, quantity, unit_price, tax_code_id, tax_rate, line_total, vat_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		lm := mapping.ToModelBillLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.BillID,
			lm.Description,
			lm.Quantity,
			lm.UnitPrice,
			lm.TaxCodeID,
			lm.TaxRate,
			lm.LineTotal,
			lm.VATAmount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert bill lines for "+m.BillID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close bill line batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindBillByID retrieves the header and its lines.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, []domain.BillLine, error) {
	headerQuery := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1 AND user_id = $2;`

	m, err := scanBill(r.Pool.QueryRow(ctx, headerQuery, billID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
		}
		return nil, nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}

	lineQuery := `
		SELECT line_id, bill_id, description, quantity, unit_price, tax_code_id, tax_rate, line_total, vat_amount
		FROM bill_lines
		WHERE bill_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, billID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bill lines: %w", err)
	}
	defer rows.Close()

	var lms []models.BillLine
	for rows.Next() {
		var lm models.BillLine
		if err := rows.Scan(
			&lm.LineID,
			&lm.BillID,
			&lm.Description,
			&lm.Quantity,
			&lm.UnitPrice,
			&lm.TaxCodeID,
			&lm.TaxRate,
			&lm.LineTotal,
			&lm.VATAmount,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan bill line: %w", err)
		}
		lms = append(lms, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate bill lines: %w", err)
	}

	bill := mapping.ToDomainBill(m)
	return &bill, mapping.ToDomainBillLineSlice(lms), nil
}

// ListBills retrieves bills for a user, newest first.
func (r *PgxBillRepository) ListBills(ctx context.Context, userID string, limit, offset int) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE user_id = $1
		ORDER BY issue_date DESC, bill_id
		LIMIT $2 OFFSET $3;
	`
	return r.queryBills(ctx, query, userID, limit, offset)
}

// ListBillsByDateRange retrieves non-draft, non-void bills dated within
// [from, before).
func (r *PgxBillRepository) ListBillsByDateRange(ctx context.Context, userID string, from, before time.Time) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE user_id = $1
		  AND issue_date >= $2 AND issue_date < $3
		  AND status NOT IN ($4, $5)
		ORDER BY issue_date, bill_id;
	`
	return r.queryBills(ctx, query, userID, from, before, string(domain.BillDraft), string(domain.BillVoid))
}

// ListOpenBills retrieves received, unpaid bills.
func (r *PgxBillRepository) ListOpenBills(ctx context.Context, userID string) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE user_id = $1 AND status = $2
		ORDER BY issue_date, bill_id;
	`
	return r.queryBills(ctx, query, userID, string(domain.BillReceived))
}

// UpdateBillStatus changes the status column.
func (r *PgxBillRepository) UpdateBillStatus(ctx context.Context, userID, billID string, status domain.BillStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bills
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE bill_id = $4 AND user_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), updatedAt, updatedBy, billID, userID)
	if err != nil {
		return fmt.Errorf("failed to update bill status %s: %w", billID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bill %s", apperrors.ErrNotFound, billID)
	}
	return nil
}
