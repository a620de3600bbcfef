package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankTransactionRecord is one well-formed statement line handed to the
// engine by the import layer. CSV parsing happens outside this core.
type BankTransactionRecord struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reference   string          `json:"reference"`
}

// ImportBankTransactionsRequest carries a batch of statement records.
type ImportBankTransactionsRequest struct {
	Transactions []BankTransactionRecord `json:"transactions" binding:"required,dive"`
}

// CommitMatchRequest selects the reconciliation target for a transaction.
type CommitMatchRequest struct {
	TargetType domain.MatchTargetType `json:"targetType" binding:"required,oneof=INVOICE BILL"`
	TargetID   string                 `json:"targetID" binding:"required"`
}

// BankTransactionResponse defines the data returned for a bank transaction.
type BankTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference,omitempty"`
	Reconciled    bool            `json:"reconciled"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	BillID        *string         `json:"billID,omitempty"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
func ToBankTransactionResponse(txn *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		Description:   txn.Description,
		Amount:        txn.Amount,
		Reference:     txn.Reference,
		Reconciled:    txn.Reconciled,
		InvoiceID:     txn.InvoiceID,
		BillID:        txn.BillID,
	}
}

// ToListBankTransactionResponse converts domain.BankTransactions to DTOs.
func ToListBankTransactionResponse(txns []domain.BankTransaction) []BankTransactionResponse {
	res := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToBankTransactionResponse(&txns[i])
	}
	return res
}
