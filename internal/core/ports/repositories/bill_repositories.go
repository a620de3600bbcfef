package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// BillReader defines read operations for bill data
type BillReader interface {
	// FindBillByID retrieves a bill header and its lines.
	FindBillByID(ctx context.Context, userID, billID string) (*domain.Bill, []domain.BillLine, error)

	// ListBills retrieves bills for a user, newest first.
	ListBills(ctx context.Context, userID string, limit, offset int) ([]domain.Bill, error)

	// ListBillsByDateRange retrieves non-draft, non-void bills dated within
	// the half-open range [from, before). Used by the VAT return calculator,
	// which passes midnight after the period's last day.
	ListBillsByDateRange(ctx context.Context, userID string, from, before time.Time) ([]domain.Bill, error)

	// ListOpenBills retrieves received, unpaid bills: reconciliation candidates.
	ListOpenBills(ctx context.Context, userID string) ([]domain.Bill, error)
}

// BillWriter defines write operations for bill data
type BillWriter interface {
	// SaveBill persists the header and all lines in one database transaction.
	SaveBill(ctx context.Context, bill domain.Bill, lines []domain.BillLine) error

	// UpdateBillStatus changes the bill status.
	UpdateBillStatus(ctx context.Context, userID, billID string, status domain.BillStatus, updatedBy string, updatedAt time.Time) error
}

// BillRepositoryFacade combines all bill-related repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}
