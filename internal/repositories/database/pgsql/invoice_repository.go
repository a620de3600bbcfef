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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, user_id, number, customer_name, issue_date, due_date, status, subtotal, vat_amount, total, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.UserID,
		&m.Number,
		&m.CustomerName,
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

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var ms []models.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice rows: %w", err)
	}
	return mapping.ToDomainInvoiceSlice(ms), nil
}

// SaveInvoice inserts the header and all lines in one database transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	headerQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.InvoiceID,
		m.UserID,
		m.Number,
		m.CustomerName,
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
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, description, quantity, unit_price, tax_code_id, tax_rate, line_total, vat_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		lm := mapping.ToModelInvoiceLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.InvoiceID,
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
			return apperrors.NewAppError(500, "failed to insert invoice lines for "+m.InvoiceID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close invoice line batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves the header and its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, []domain.InvoiceLine, error) {
	headerQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND user_id = $2;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, headerQuery, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	lineQuery := `
		SELECT line_id, invoice_id, description, quantity, unit_price, tax_code_id, tax_rate, line_total, vat_amount
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	var lms []models.InvoiceLine
	for rows.Next() {
		var lm models.InvoiceLine
		if err := rows.Scan(
			&lm.LineID,
			&lm.InvoiceID,
			&lm.Description,
			&lm.Quantity,
			&lm.UnitPrice,
			&lm.TaxCodeID,
			&lm.TaxRate,
			&lm.LineTotal,
			&lm.VATAmount,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}
		lms = append(lms, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate invoice lines: %w", err)
	}

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, mapping.ToDomainInvoiceLineSlice(lms), nil
}

// ListInvoices retrieves invoices for a user, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, limit, offset int) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1
		ORDER BY issue_date DESC, invoice_id
		LIMIT $2 OFFSET $3;
	`
	return r.queryInvoices(ctx, query, userID, limit, offset)
}

// ListInvoicesByDateRange retrieves non-draft, non-void invoices issued
// within [from, before).
func (r *PgxInvoiceRepository) ListInvoicesByDateRange(ctx context.Context, userID string, from, before time.Time) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1
		  AND issue_date >= $2 AND issue_date < $3
		  AND status NOT IN ($4, $5)
		ORDER BY issue_date, invoice_id;
	`
	return r.queryInvoices(ctx, query, userID, from, before, string(domain.InvoiceDraft), string(domain.InvoiceVoid))
}

// ListOpenInvoices retrieves sent, unpaid invoices.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, userID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1 AND status = $2
		ORDER BY issue_date, invoice_id;
	`
	return r.queryInvoices(ctx, query, userID, string(domain.InvoiceSent))
}

// UpdateInvoiceStatus changes the status column.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE invoices
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $4 AND user_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), updatedAt, updatedBy, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("failed to update invoice status %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return nil
}
