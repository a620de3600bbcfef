package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// ReportingRepository supplies the flat ledger rows the report folds scan.
// A nil bound leaves that side of the date range open.
type ReportingRepository interface {
	// GetLedgerRows retrieves posted journal lines joined to their account
	// and journal date, filtered to the half-open range [from, before) where
	// bounds are set.
	GetLedgerRows(ctx context.Context, userID string, from, before *time.Time) ([]domain.LedgerRow, error)
}
