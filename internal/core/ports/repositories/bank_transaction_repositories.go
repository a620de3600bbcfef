package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// BankTransactionReader defines read operations for bank transaction data
type BankTransactionReader interface {
	// FindBankTransactionByID retrieves a specific bank transaction.
	FindBankTransactionByID(ctx context.Context, userID, transactionID string) (*domain.BankTransaction, error)

	// ListBankTransactions retrieves transactions for a user, newest first,
	// optionally filtered by reconciliation status.
	ListBankTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for bank transaction data
type BankTransactionWriter interface {
	// SaveBankTransactions persists a batch of imported statement lines in
	// one database transaction.
	SaveBankTransactions(ctx context.Context, txns []domain.BankTransaction) error

	// MarkReconciled links a transaction to exactly one of invoiceID/billID
	// and sets the reconciled flag, guarded so it only succeeds when the row
	// was still unreconciled. Returns apperrors.ErrAlreadyReconciled when
	// another commit won the race.
	MarkReconciled(ctx context.Context, userID, transactionID string, invoiceID, billID *string, updatedBy string, updatedAt time.Time) error
}

// BankTransactionRepositoryFacade combines all bank-transaction repository interfaces
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
