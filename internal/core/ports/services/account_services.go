package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// AccountSvcFacade defines operations on the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount creates a new ledger account.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts for a user.
	ListAccounts(ctx context.Context, userID string, limit, offset int) ([]domain.Account, error)

	// UpdateAccount updates mutable account fields. The account type is
	// immutable; requests attempting to change it are rejected.
	UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}
