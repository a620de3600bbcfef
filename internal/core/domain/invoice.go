package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
	InvoiceVoid  InvoiceStatus = "VOID"
)

// CanTransitionTo reports whether an invoice may move from s to next.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceSent || next == InvoiceVoid
	case InvoiceSent:
		return next == InvoicePaid || next == InvoiceVoid
	}
	return false
}

// Invoice is a sales document issued to a customer. Subtotal, VATAmount and
// Total are derived from the lines, never independently authored:
// Total = Subtotal + VATAmount always holds.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // Owning user
	Number       string          `json:"number"`    // Human-readable, e.g. INV-1001
	CustomerName string          `json:"customerName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Status       InvoiceStatus   `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`  // Sum of line nets
	VATAmount    decimal.Decimal `json:"vatAmount"` // Sum of line VAT
	Total        decimal.Decimal `json:"total"`     // Subtotal + VATAmount
	AuditFields
}

// InvoiceLine is a single priced line on an invoice. Lines are owned
// exclusively by their parent header and are written atomically with it.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> Invoice.invoiceID
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxCodeID   *string         `json:"taxCodeID,omitempty"` // Nullable FK -> TaxCode
	TaxRate     decimal.Decimal `json:"taxRate"`             // Rate applied, 0 when no code
	LineTotal   decimal.Decimal `json:"lineTotal"`           // Net amount
	VATAmount   decimal.Decimal `json:"vatAmount"`
}
