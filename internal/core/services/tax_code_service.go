package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// taxCodeService manages VAT rate reference data.
type taxCodeService struct {
	BaseService
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade
}

// NewTaxCodeService creates a new TaxCodeSvcFacade implementation.
func NewTaxCodeService(taxCodeRepo portsrepo.TaxCodeRepositoryFacade) portssvc.TaxCodeSvcFacade {
	return &taxCodeService{taxCodeRepo: taxCodeRepo}
}

var _ portssvc.TaxCodeSvcFacade = (*taxCodeService)(nil)

func (s *taxCodeService) CreateTaxCode(ctx context.Context, userID string, req dto.CreateTaxCodeRequest) (*domain.TaxCode, error) {
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	taxCode := domain.TaxCode{
		TaxCodeID: uuid.NewString(),
		Name:      req.Name,
		Rate:      req.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.taxCodeRepo.SaveTaxCode(ctx, taxCode); err != nil {
		s.LogError(ctx, err, "Failed to save tax code", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tax code: %w", err)
	}

	s.LogInfo(ctx, "Tax code created", slog.String("tax_code_id", taxCode.TaxCodeID))
	return &taxCode, nil
}

func (s *taxCodeService) GetTaxCodeByID(ctx context.Context, taxCodeID string) (*domain.TaxCode, error) {
	return s.taxCodeRepo.FindTaxCodeByID(ctx, taxCodeID)
}

func (s *taxCodeService) ListTaxCodes(ctx context.Context) ([]domain.TaxCode, error) {
	return s.taxCodeRepo.ListTaxCodes(ctx)
}
