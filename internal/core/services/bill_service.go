package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/utils/accounting"
)

// billService provides purchase bill operations. Amount arithmetic is
// identical to the invoice side; only the document shape differs.
type billService struct {
	BaseService
	billRepo    portsrepo.BillRepositoryFacade
	taxCodeRepo portsrepo.TaxCodeReader
}

// NewBillService creates a new BillSvcFacade implementation.
func NewBillService(billRepo portsrepo.BillRepositoryFacade, taxCodeRepo portsrepo.TaxCodeReader) portssvc.BillSvcFacade {
	return &billService{
		billRepo:    billRepo,
		taxCodeRepo: taxCodeRepo,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, []domain.BillLine, error) {
	if len(req.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: bill must have at least one line", apperrors.ErrValidation)
	}
	for _, line := range req.Lines {
		if line.Quantity.IsNegative() {
			return nil, nil, fmt.Errorf("%w: line quantity cannot be negative", apperrors.ErrValidation)
		}
	}

	taxCodes, err := resolveTaxRates(ctx, s.taxCodeRepo, req.Lines)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	billID := uuid.NewString()

	lines := make([]domain.BillLine, len(req.Lines))
	var totals documentTotals
	for i, lineReq := range req.Lines {
		rate := decimal.Zero
		if lineReq.TaxCodeID != nil {
			rate = taxCodes[*lineReq.TaxCodeID].Rate
		}
		amounts := accounting.CalculateLine(lineReq.Quantity, lineReq.UnitPrice, rate)
		lines[i] = domain.BillLine{
			LineID:      uuid.NewString(),
			BillID:      billID,
			Description: lineReq.Description,
			Quantity:    lineReq.Quantity,
			UnitPrice:   lineReq.UnitPrice,
			TaxCodeID:   lineReq.TaxCodeID,
			TaxRate:     rate,
			LineTotal:   amounts.Net,
			VATAmount:   amounts.VAT,
		}
		totals.Subtotal = totals.Subtotal.Add(amounts.Net)
		totals.VATAmount = totals.VATAmount.Add(amounts.VAT)
	}
	totals.Total = totals.Subtotal.Add(totals.VATAmount)

	if err := ValidateHeaderTotals(totals, req.Totals); err != nil {
		s.LogDebug(ctx, "Bill totals validation failed", slog.String("error", err.Error()))
		return nil, nil, err
	}

	bill := domain.Bill{
		BillID:       billID,
		UserID:       userID,
		Reference:    req.Reference,
		SupplierName: req.SupplierName,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Status:       domain.BillDraft,
		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		Total:        totals.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill, lines); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("bill_reference", req.Reference))
		return nil, nil, fmt.Errorf("failed to save bill: %w", err)
	}

	s.LogInfo(ctx, "Bill created",
		slog.String("bill_id", billID),
		slog.String("bill_reference", req.Reference),
		slog.String("total", bill.Total.StringFixed(2)))
	return &bill, lines, nil
}

func (s *billService) GetBillByID(ctx context.Context, userID, billID string) (*domain.Bill, []domain.BillLine, error) {
	return s.billRepo.FindBillByID(ctx, userID, billID)
}

func (s *billService) ListBills(ctx context.Context, userID string, limit, offset int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.billRepo.ListBills(ctx, userID, limit, offset)
}

func (s *billService) UpdateBillStatus(ctx context.Context, userID, billID string, status domain.BillStatus) (*domain.Bill, error) {
	bill, _, err := s.billRepo.FindBillByID(ctx, userID, billID)
	if err != nil {
		return nil, err
	}

	if !bill.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move bill from %s to %s",
			apperrors.ErrValidation, bill.Status, status)
	}

	now := time.Now().UTC()
	if err := s.billRepo.UpdateBillStatus(ctx, userID, billID, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update bill status", slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	bill.Status = status
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	s.LogInfo(ctx, "Bill status updated",
		slog.String("bill_id", billID),
		slog.String("status", string(status)))
	return bill, nil
}
