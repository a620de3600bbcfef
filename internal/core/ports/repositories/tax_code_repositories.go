package repositories

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// TaxCodeReader defines read operations for tax code reference data
type TaxCodeReader interface {
	// FindTaxCodeByID retrieves a specific tax code.
	FindTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error)

	// FindTaxCodesByIDs retrieves multiple tax codes keyed by ID.
	FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error)

	// ListTaxCodes retrieves all tax codes, ordered by name.
	ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error)
}

// TaxCodeWriter defines write operations for tax code reference data
type TaxCodeWriter interface {
	// SaveTaxCode persists a new tax code.
	SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error
}

// TaxCodeRepositoryFacade combines all tax-code-related repository interfaces
type TaxCodeRepositoryFacade interface {
	TaxCodeReader
	TaxCodeWriter
}
