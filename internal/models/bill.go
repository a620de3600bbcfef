package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a row in the bills table.
type Bill struct {
	BillID       string          `db:"bill_id"`
	UserID       string          `db:"user_id"`
	Reference    string          `db:"reference"`
	SupplierName string          `db:"supplier_name"`
	IssueDate    time.Time       `db:"issue_date"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	Total        decimal.Decimal `db:"total"`
	AuditFields
}

// BillLine represents a row in the bill_lines table.
type BillLine struct {
	LineID      string          `db:"line_id"`
	BillID      string          `db:"bill_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TaxCodeID   *string         `db:"tax_code_id"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
	VATAmount   decimal.Decimal `db:"vat_amount"`
}
