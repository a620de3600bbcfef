package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillRequest defines the data needed to record a bill with its lines.
type CreateBillRequest struct {
	Reference    string                `json:"reference" binding:"required"`
	SupplierName string                `json:"supplierName" binding:"required"`
	IssueDate    time.Time             `json:"issueDate" binding:"required"`
	DueDate      time.Time             `json:"dueDate" binding:"required"`
	Lines        []DocumentLineRequest `json:"lines" binding:"required,dive"`
	Totals       *HeaderTotals         `json:"totals"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID       string                 `json:"billID"`
	Reference    string                 `json:"reference"`
	SupplierName string                 `json:"supplierName"`
	IssueDate    time.Time              `json:"issueDate"`
	DueDate      time.Time              `json:"dueDate"`
	Status       domain.BillStatus      `json:"status"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	VATAmount    decimal.Decimal        `json:"vatAmount"`
	Total        decimal.Decimal        `json:"total"`
	Lines        []DocumentLineResponse `json:"lines,omitempty"`
}

// ToBillResponse converts a domain.Bill and its lines to a BillResponse DTO.
func ToBillResponse(bill *domain.Bill, lines []domain.BillLine) BillResponse {
	resp := BillResponse{
		BillID:       bill.BillID,
		Reference:    bill.Reference,
		SupplierName: bill.SupplierName,
		IssueDate:    bill.IssueDate,
		DueDate:      bill.DueDate,
		Status:       bill.Status,
		Subtotal:     bill.Subtotal,
		VATAmount:    bill.VATAmount,
		Total:        bill.Total,
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, DocumentLineResponse{
			LineID:      line.LineID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxCodeID:   line.TaxCodeID,
			TaxRate:     line.TaxRate,
			LineTotal:   line.LineTotal,
			VATAmount:   line.VATAmount,
		})
	}
	return resp
}

// ToListBillResponse converts domain.Bills to BillResponse DTOs without lines.
func ToListBillResponse(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i := range bills {
		res[i] = ToBillResponse(&bills[i], nil)
	}
	return res
}
