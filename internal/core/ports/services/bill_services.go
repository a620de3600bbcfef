package services

import (
	"context"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/dto"
)

// BillSvcFacade defines operations on purchase bills.
type BillSvcFacade interface {
	// CreateBill computes line amounts and totals server-side, validates any
	// client-supplied totals, and persists header plus lines atomically.
	CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, []domain.BillLine, error)

	// GetBillByID retrieves a bill and its lines.
	GetBillByID(ctx context.Context, userID, billID string) (*domain.Bill, []domain.BillLine, error)

	// ListBills retrieves bills for a user.
	ListBills(ctx context.Context, userID string, limit, offset int) ([]domain.Bill, error)

	// UpdateBillStatus advances the bill through its state machine.
	UpdateBillStatus(ctx context.Context, userID, billID string, status domain.BillStatus) (*domain.Bill, error)
}
