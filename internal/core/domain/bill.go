package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the lifecycle state of a purchase bill.
type BillStatus string

const (
	BillDraft    BillStatus = "DRAFT"
	BillReceived BillStatus = "RECEIVED"
	BillPaid     BillStatus = "PAID"
	BillVoid     BillStatus = "VOID"
)

// CanTransitionTo reports whether a bill may move from s to next.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	switch s {
	case BillDraft:
		return next == BillReceived || next == BillVoid
	case BillReceived:
		return next == BillPaid || next == BillVoid
	}
	return false
}

// Bill is a purchase document received from a supplier. Totals are derived
// from the lines exactly as for invoices.
type Bill struct {
	BillID       string          `json:"billID"` // Primary Key (UUID)
	UserID       string          `json:"userID"` // Owning user
	Reference    string          `json:"reference"`
	SupplierName string          `json:"supplierName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Status       BillStatus      `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	Total        decimal.Decimal `json:"total"`
	AuditFields
}

// BillLine is a single priced line on a bill.
type BillLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	BillID      string          `json:"billID"` // FK -> Bill.billID
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxCodeID   *string         `json:"taxCodeID,omitempty"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
}
