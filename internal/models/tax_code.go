package models

import "github.com/shopspring/decimal"

// TaxCode represents a row in the tax_codes table.
type TaxCode struct {
	TaxCodeID string          `db:"tax_code_id"`
	Name      string          `db:"name"`
	Rate      decimal.Decimal `db:"rate"`
	AuditFields
}
