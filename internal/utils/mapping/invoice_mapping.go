package mapping

import (
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:    d.InvoiceID,
		UserID:       d.UserID,
		Number:       d.Number,
		CustomerName: d.CustomerName,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		Subtotal:     d.Subtotal,
		VATAmount:    d.VATAmount,
		Total:        d.Total,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		UserID:       m.UserID,
		Number:       m.Number,
		CustomerName: m.CustomerName,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Status:       domain.InvoiceStatus(m.Status),
		Subtotal:     m.Subtotal,
		VATAmount:    m.VATAmount,
		Total:        m.Total,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelInvoiceLine converts a domain InvoiceLine to a model InvoiceLine
func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:      d.LineID,
		InvoiceID:   d.InvoiceID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TaxCodeID:   d.TaxCodeID,
		TaxRate:     d.TaxRate,
		LineTotal:   d.LineTotal,
		VATAmount:   d.VATAmount,
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to a domain InvoiceLine
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxCodeID:   m.TaxCodeID,
		TaxRate:     m.TaxRate,
		LineTotal:   m.LineTotal,
		VATAmount:   m.VATAmount,
	}
}

// ToDomainInvoiceLineSlice converts model InvoiceLines to domain InvoiceLines
func ToDomainInvoiceLineSlice(ms []models.InvoiceLine) []domain.InvoiceLine {
	ds := make([]domain.InvoiceLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceLine(m)
	}
	return ds
}
