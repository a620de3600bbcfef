package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a row in the invoices table.
type Invoice struct {
	InvoiceID    string          `db:"invoice_id"`
	UserID       string          `db:"user_id"`
	Number       string          `db:"number"`
	CustomerName string          `db:"customer_name"`
	IssueDate    time.Time       `db:"issue_date"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	Subtotal     decimal.Decimal `db:"subtotal"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	Total        decimal.Decimal `db:"total"`
	AuditFields
}

// InvoiceLine represents a row in the invoice_lines table. Lines are deleted
// with their parent (ON DELETE CASCADE).
type InvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	TaxCodeID   *string         `db:"tax_code_id"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
	VATAmount   decimal.Decimal `db:"vat_amount"`
}
