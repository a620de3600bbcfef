package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a single statement line handed to us as a well-formed
// record by the import layer. Amount is signed: positive is money in,
// negative is money out. Once reconciled it links to at most one of
// InvoiceID/BillID, never both, and the link is terminal.
type BankTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	Reconciled    bool            `json:"reconciled"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	BillID        *string         `json:"billID,omitempty"`
	AuditFields
}

// MatchTargetType identifies what a reconciliation suggestion points at.
type MatchTargetType string

const (
	MatchInvoice MatchTargetType = "INVOICE"
	MatchBill    MatchTargetType = "BILL"
)

// Match criteria names recorded on a suggestion.
const (
	CriterionAmount    = "amount"
	CriterionReference = "reference"
)

// MatchSuggestion is an advisory pairing of a bank transaction with an open
// invoice or bill. Producing one never mutates state.
type MatchSuggestion struct {
	TransactionID    string          `json:"transactionID"`
	TargetType       MatchTargetType `json:"targetType"`
	TargetID         string          `json:"targetID"`
	TargetNumber     string          `json:"targetNumber"` // Invoice number or bill reference
	TargetName       string          `json:"targetName"`   // Customer or supplier name
	TargetTotal      decimal.Decimal `json:"targetTotal"`
	AmountDifference decimal.Decimal `json:"amountDifference"`
	MatchCriteria    []string        `json:"matchCriteria"`
}
