package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
)

// HMRCGateway is the outbound port to the tax authority's MTD VAT API.
// Implementations live under internal/platform/hmrc.
type HMRCGateway interface {
	// FetchObligations retrieves the registered business's filing windows.
	FetchObligations(ctx context.Context) ([]domain.VATObligation, error)

	// SubmitVATReturn files a finalised nine-box return and returns the
	// authority's receipt.
	SubmitVATReturn(ctx context.Context, ret domain.VATReturn) (*domain.VATSubmissionReceipt, error)
}

// vatService derives and files the nine-box VAT return.
type vatService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	billRepo    portsrepo.BillReader
	hmrc        HMRCGateway
}

// NewVATService creates a new VATSvcFacade implementation.
func NewVATService(invoiceRepo portsrepo.InvoiceReader, billRepo portsrepo.BillReader, hmrc HMRCGateway) portssvc.VATSvcFacade {
	return &vatService{
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		hmrc:        hmrc,
	}
}

var _ portssvc.VATSvcFacade = (*vatService)(nil)

// CalculateVATReturn derives the nine boxes from the given documents. Pure:
// the same documents and range always yield the same nine numbers, so a
// return can be replayed for audit. Boxes 2, 8 and 9 stay zero: no
// cross-border acquisition support.
func CalculateVATReturn(invoices []domain.Invoice, bills []domain.Bill, from, to time.Time) *domain.VATReturn {
	ret := &domain.VATReturn{From: from, To: to}
	for _, inv := range invoices {
		ret.Box1 = ret.Box1.Add(inv.VATAmount)
		ret.Box6 = ret.Box6.Add(inv.Total.Sub(inv.VATAmount))
	}
	for _, bill := range bills {
		ret.Box4 = ret.Box4.Add(bill.VATAmount)
		ret.Box7 = ret.Box7.Add(bill.Total.Sub(bill.VATAmount))
	}
	ret.Box3 = ret.Box1.Add(ret.Box2)
	ret.Box5 = ret.Box3.Sub(ret.Box4)
	return ret
}

func (s *vatService) CalculateReturn(ctx context.Context, userID string, from, to time.Time) (*domain.VATReturn, error) {
	// Documents issued at any time on the period's last day belong to the
	// period, so the upper bound widens to midnight after it.
	start := dayStartUTC(from)
	before := dayEndExclusiveUTC(to)
	invoices, err := s.invoiceRepo.ListInvoicesByDateRange(ctx, userID, start, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch invoices for VAT return")
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	bills, err := s.billRepo.ListBillsByDateRange(ctx, userID, start, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch bills for VAT return")
		return nil, fmt.Errorf("failed to fetch bills: %w", err)
	}
	return CalculateVATReturn(invoices, bills, from, to), nil
}

func (s *vatService) ListObligations(ctx context.Context, userID string) ([]domain.VATObligation, error) {
	obligations, err := s.hmrc.FetchObligations(ctx)
	if err != nil {
		// Reported verbatim; no local retry.
		s.LogError(ctx, err, "Failed to fetch VAT obligations", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to fetch VAT obligations: %w", err)
	}
	return obligations, nil
}

// SubmitReturn recalculates the boxes for the period and files them as
// finalised. A failed submission is surfaced as-is and never retried here:
// a silently duplicated VAT filing is worse than a reported failure.
func (s *vatService) SubmitReturn(ctx context.Context, userID, periodKey string, from, to time.Time) (*domain.VATReturn, *domain.VATSubmissionReceipt, error) {
	ret, err := s.CalculateReturn(ctx, userID, from, to)
	if err != nil {
		return nil, nil, err
	}
	ret.PeriodKey = periodKey
	ret.Finalised = true

	receipt, err := s.hmrc.SubmitVATReturn(ctx, *ret)
	if err != nil {
		s.LogError(ctx, err, "VAT return submission failed", slog.String("period_key", periodKey))
		return nil, nil, fmt.Errorf("VAT return submission failed: %w", err)
	}

	s.LogInfo(ctx, "VAT return submitted",
		slog.String("period_key", periodKey),
		slog.String("box5", ret.Box5.StringFixed(2)),
		slog.String("form_bundle", receipt.FormBundleNumber))
	return ret, receipt, nil
}
