package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header and its lines.
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, []domain.InvoiceLine, error)

	// ListInvoices retrieves invoices for a user, newest first.
	ListInvoices(ctx context.Context, userID string, limit, offset int) ([]domain.Invoice, error)

	// ListInvoicesByDateRange retrieves non-draft, non-void invoices issued
	// within the half-open range [from, before). Used by the VAT return
	// calculator, which passes midnight after the period's last day.
	ListInvoicesByDateRange(ctx context.Context, userID string, from, before time.Time) ([]domain.Invoice, error)

	// ListOpenInvoices retrieves sent, unpaid invoices: reconciliation candidates.
	ListOpenInvoices(ctx context.Context, userID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists the header and all lines in one database
	// transaction: all rows commit or none do.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// UpdateInvoiceStatus changes the invoice status.
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
