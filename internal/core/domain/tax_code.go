package domain

import "github.com/shopspring/decimal"

// TaxCode is read-mostly reference data naming a VAT rate, expressed as a
// percentage (e.g. 20.00 for standard rate).
type TaxCode struct {
	TaxCodeID string          `json:"taxCodeID"` // Primary Key (UUID)
	Name      string          `json:"name"`      // e.g. "Standard Rate"
	Rate      decimal.Decimal `json:"rate"`
	AuditFields
}
