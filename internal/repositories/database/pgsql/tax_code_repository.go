package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_app/internal/models"
	"github.com/ledgerline/ledgerline_app/internal/utils/mapping"
)

type PgxTaxCodeRepository struct {
	BaseRepository
}

// newPgxTaxCodeRepository creates a new repository for tax code reference data.
func newPgxTaxCodeRepository(pool *pgxpool.Pool) portsrepo.TaxCodeRepositoryFacade {
	return &PgxTaxCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxCodeRepositoryFacade = (*PgxTaxCodeRepository)(nil)

const taxCodeColumns = `tax_code_id, name, rate, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxCode(row pgx.Row) (models.TaxCode, error) {
	var m models.TaxCode
	err := row.Scan(
		&m.TaxCodeID,
		&m.Name,
		&m.Rate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTaxCode inserts a new tax code.
func (r *PgxTaxCodeRepository) SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)

	query := `
		INSERT INTO tax_codes (` + taxCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaxCodeID,
		m.Name,
		m.Rate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tax code %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save tax code %s: %w", m.TaxCodeID, err)
	}
	return nil
}

// FindTaxCodeByID retrieves a tax code by ID.
func (r *PgxTaxCodeRepository) FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes WHERE tax_code_id = $1;`

	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, taxCodeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, taxCodeID)
		}
		return nil, fmt.Errorf("failed to find tax code %s: %w", taxCodeID, err)
	}

	taxCode := mapping.ToDomainTaxCode(m)
	return &taxCode, nil
}

// FindTaxCodesByIDs retrieves multiple tax codes keyed by ID.
func (r *PgxTaxCodeRepository) FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error) {
	if len(taxCodeIDs) == 0 {
		return map[string]domain.TaxCode{}, nil
	}

	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes WHERE tax_code_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, taxCodeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax codes: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.TaxCode, len(taxCodeIDs))
	for rows.Next() {
		m, err := scanTaxCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax code row: %w", err)
		}
		result[m.TaxCodeID] = mapping.ToDomainTaxCode(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tax code rows: %w", err)
	}
	return result, nil
}

// ListTaxCodes retrieves all tax codes ordered by name.
func (r *PgxTaxCodeRepository) ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error) {
	query := `SELECT ` + taxCodeColumns + ` FROM tax_codes ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax codes: %w", err)
	}
	defer rows.Close()

	var ms []models.TaxCode
	for rows.Next() {
		m, err := scanTaxCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax code row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tax code rows: %w", err)
	}
	return mapping.ToDomainTaxCodeSlice(ms), nil
}
