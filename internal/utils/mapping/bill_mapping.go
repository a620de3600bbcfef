package mapping

import (
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:       d.BillID,
		UserID:       d.UserID,
		Reference:    d.Reference,
		SupplierName: d.SupplierName,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		Subtotal:     d.Subtotal,
		VATAmount:    d.VATAmount,
		Total:        d.Total,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:       m.BillID,
		UserID:       m.UserID,
		Reference:    m.Reference,
		SupplierName: m.SupplierName,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Status:       domain.BillStatus(m.Status),
		Subtotal:     m.Subtotal,
		VATAmount:    m.VATAmount,
		Total:        m.Total,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts model Bills to domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}

// ToModelBillLine converts a domain BillLine to a model BillLine
func ToModelBillLine(d domain.BillLine) models.BillLine {
	return models.BillLine{
		LineID:      d.LineID,
		BillID:      d.BillID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TaxCodeID:   d.TaxCodeID,
		TaxRate:     d.TaxRate,
		LineTotal:   d.LineTotal,
		VATAmount:   d.VATAmount,
	}
}

// ToDomainBillLine converts a model BillLine to a domain BillLine
func ToDomainBillLine(m models.BillLine) domain.BillLine {
	return domain.BillLine{
		LineID:      m.LineID,
		BillID:      m.BillID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxCodeID:   m.TaxCodeID,
		TaxRate:     m.TaxRate,
		LineTotal:   m.LineTotal,
		VATAmount:   m.VATAmount,
	}
}

// ToDomainBillLineSlice converts model BillLines to domain BillLines
func ToDomainBillLineSlice(ms []models.BillLine) []domain.BillLine {
	ds := make([]domain.BillLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBillLine(m)
	}
	return ds
}
