package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// ReconciliationSvcFacade defines operations for matching bank transactions
// against open invoices and bills.
type ReconciliationSvcFacade interface {
	// ImportTransactions persists a batch of well-formed statement records.
	ImportTransactions(ctx context.Context, userID string, req dto.ImportBankTransactionsRequest) ([]domain.BankTransaction, error)

	// ListTransactions retrieves bank transactions, optionally filtered by
	// reconciliation status.
	ListTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error)

	// SuggestMatches proposes open invoices or bills for a transaction.
	// Advisory only: nothing is mutated.
	SuggestMatches(ctx context.Context, userID, transactionID string) ([]domain.MatchSuggestion, error)

	// CommitMatch links the transaction to one target and marks it
	// reconciled. Fails with apperrors.ErrAlreadyReconciled if already
	// matched; first writer wins.
	CommitMatch(ctx context.Context, userID, transactionID string, targetType domain.MatchTargetType, targetID string) (*domain.BankTransaction, error)
}
