package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// TaxCodeSvcFacade defines operations on VAT rate reference data.
type TaxCodeSvcFacade interface {
	// CreateTaxCode creates a new tax code.
	CreateTaxCode(ctx context.Context, userID string, req dto.CreateTaxCodeRequest) (*domain.TaxCode, error)

	// GetTaxCodeByID retrieves a single tax code.
	GetTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error)

	// ListTaxCodes retrieves all tax codes.
	ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error)
}
