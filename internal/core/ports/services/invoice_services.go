package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// InvoiceSvcFacade defines operations on sales invoices.
type InvoiceSvcFacade interface {
	// CreateInvoice computes line amounts and totals server-side, validates
	// any client-supplied totals, and persists header plus lines atomically.
	CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLine, error)

	// GetInvoiceByID retrieves an invoice and its lines.
	GetInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, []domain.InvoiceLine, error)

	// ListInvoices retrieves invoices for a user.
	ListInvoices(ctx context.Context, userID string, limit, offset int) ([]domain.Invoice, error)

	// UpdateInvoiceStatus advances the invoice through its state machine.
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)
}
