package mapping

import (
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/models"
)

// ToModelTaxCode converts a domain TaxCode to a model TaxCode
func ToModelTaxCode(d domain.TaxCode) models.TaxCode {
	return models.TaxCode{
		TaxCodeID:   d.TaxCodeID,
		Name:        d.Name,
		Rate:        d.Rate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxCode converts a model TaxCode to a domain TaxCode
func ToDomainTaxCode(m models.TaxCode) domain.TaxCode {
	return domain.TaxCode{
		TaxCodeID:   m.TaxCodeID,
		Name:        m.Name,
		Rate:        m.Rate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxCodeSlice converts model TaxCodes to domain TaxCodes
func ToDomainTaxCodeSlice(ms []models.TaxCode) []domain.TaxCode {
	ds := make([]domain.TaxCode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxCode(m)
	}
	return ds
}
