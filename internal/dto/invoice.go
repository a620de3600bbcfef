package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is a single priced line on a new invoice or bill.
// A nil TaxCodeID behaves as a 0% code.
type DocumentLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	TaxCodeID   *string         `json:"taxCodeID"`
}

// HeaderTotals carries optional client-computed totals. When present they are
// cross-checked against the server-side computation and the write is rejected
// on disagreement beyond tolerance, never silently corrected.
type HeaderTotals struct {
	Subtotal  *decimal.Decimal `json:"subtotal"`
	VATAmount *decimal.Decimal `json:"vatAmount"`
	Total     *decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest defines the data needed to create an invoice with its lines.
type CreateInvoiceRequest struct {
	Number       string                `json:"number" binding:"required"`
	CustomerName string                `json:"customerName" binding:"required"`
	IssueDate    time.Time             `json:"issueDate" binding:"required"`
	DueDate      time.Time             `json:"dueDate" binding:"required"`
	Lines        []DocumentLineRequest `json:"lines" binding:"required,dive"`
	Totals       *HeaderTotals         `json:"totals"`
}

// ListDocumentsParams defines query parameters for listing invoices or bills.
type ListDocumentsParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,gt=0,lte=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}

// UpdateDocumentStatusRequest carries a status transition for an invoice or bill.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DocumentLineResponse defines the data returned for an invoice or bill line.
type DocumentLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxCodeID   *string         `json:"taxCodeID,omitempty"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID    string                 `json:"invoiceID"`
	Number       string                 `json:"number"`
	CustomerName string                 `json:"customerName"`
	IssueDate    time.Time              `json:"issueDate"`
	DueDate      time.Time              `json:"dueDate"`
	Status       domain.InvoiceStatus   `json:"status"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	VATAmount    decimal.Decimal        `json:"vatAmount"`
	Total        decimal.Decimal        `json:"total"`
	Lines        []DocumentLineResponse `json:"lines,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice and its lines to an InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice, lines []domain.InvoiceLine) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		Number:       inv.Number,
		CustomerName: inv.CustomerName,
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		Status:       inv.Status,
		Subtotal:     inv.Subtotal,
		VATAmount:    inv.VATAmount,
		Total:        inv.Total,
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

// ToListInvoiceResponse converts domain.Invoices to InvoiceResponse DTOs without lines.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], nil)
	}
	return res
}
