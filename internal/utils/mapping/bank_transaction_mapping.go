package mapping

import (
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/models"
)

// ToModelBankTransaction converts a domain BankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Date:          d.Date,
		Description:   d.Description,
		Amount:        d.Amount,
		Reference:     d.Reference,
		Reconciled:    d.Reconciled,
		InvoiceID:     d.InvoiceID,
		BillID:        d.BillID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a model BankTransaction to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Date:          m.Date,
		Description:   m.Description,
		Amount:        m.Amount,
		Reference:     m.Reference,
		Reconciled:    m.Reconciled,
		InvoiceID:     m.InvoiceID,
		BillID:        m.BillID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankTransactionSlice converts model BankTransactions to domain BankTransactions
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	ds := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankTransaction(m)
	}
	return ds
}
