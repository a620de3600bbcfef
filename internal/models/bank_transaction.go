package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a row in the bank_transactions table.
// A CHECK constraint keeps invoice_id and bill_id mutually exclusive.
type BankTransaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Date          time.Time       `db:"txn_date"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Reference     string          `db:"reference"`
	Reconciled    bool            `db:"reconciled"`
	InvoiceID     *string         `db:"invoice_id"`
	BillID        *string         `db:"bill_id"`
	AuditFields
}
