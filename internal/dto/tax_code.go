package dto

import (
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest defines the data needed to create a tax code.
type CreateTaxCodeRequest struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxCodeResponse defines the data returned for a tax code.
type TaxCodeResponse struct {
	TaxCodeID string          `json:"taxCodeID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
}

// ToTaxCodeResponse converts a domain.TaxCode to a TaxCodeResponse DTO.
func ToTaxCodeResponse(tc *domain.TaxCode) TaxCodeResponse {
	return TaxCodeResponse{
		TaxCodeID: tc.TaxCodeID,
		Name:      tc.Name,
		Rate:      tc.Rate,
	}
}

// ToListTaxCodeResponse converts domain.TaxCodes to TaxCodeResponse DTOs.
func ToListTaxCodeResponse(codes []domain.TaxCode) []TaxCodeResponse {
	res := make([]TaxCodeResponse, len(codes))
	for i := range codes {
		res[i] = ToTaxCodeResponse(&codes[i])
	}
	return res
}
