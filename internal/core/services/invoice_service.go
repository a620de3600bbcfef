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

// invoiceService provides sales invoice operations.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	taxCodeRepo portsrepo.TaxCodeReader
}

// NewInvoiceService creates a new InvoiceSvcFacade implementation.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, taxCodeRepo portsrepo.TaxCodeReader) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		taxCodeRepo: taxCodeRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// documentTotals accumulates full-precision sums of already-rounded line
// amounts for a header.
type documentTotals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// ValidateHeaderTotals cross-checks client-supplied header totals against the
// server-side computation: any disagreement beyond tolerance rejects the
// write with ErrTotalsMismatch. The write is never silently corrected.
func ValidateHeaderTotals(computed documentTotals, supplied *dto.HeaderTotals) error {
	if supplied == nil {
		return nil
	}
	if supplied.Subtotal != nil && !accounting.WithinTolerance(computed.Subtotal, *supplied.Subtotal) {
		return fmt.Errorf("%w: subtotal is %s, lines sum to %s",
			apperrors.ErrTotalsMismatch, supplied.Subtotal.StringFixed(2), computed.Subtotal.StringFixed(2))
	}
	if supplied.VATAmount != nil && !accounting.WithinTolerance(computed.VATAmount, *supplied.VATAmount) {
		return fmt.Errorf("%w: vat amount is %s, lines sum to %s",
			apperrors.ErrTotalsMismatch, supplied.VATAmount.StringFixed(2), computed.VATAmount.StringFixed(2))
	}
	if supplied.Total != nil && !accounting.WithinTolerance(computed.Total, *supplied.Total) {
		return fmt.Errorf("%w: total is %s, lines sum to %s",
			apperrors.ErrTotalsMismatch, supplied.Total.StringFixed(2), computed.Total.StringFixed(2))
	}
	return nil
}

// resolveTaxRates loads the tax codes referenced by the lines, keyed by ID.
// An absent tax code on a line behaves as a 0% code.
func resolveTaxRates(ctx context.Context, taxCodeRepo portsrepo.TaxCodeReader, lines []dto.DocumentLineRequest) (map[string]domain.TaxCode, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	for _, line := range lines {
		if line.TaxCodeID != nil && !seen[*line.TaxCodeID] {
			seen[*line.TaxCodeID] = true
			ids = append(ids, *line.TaxCodeID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.TaxCode{}, nil
	}
	codes, err := taxCodeRepo.FindTaxCodesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tax codes: %w", err)
	}
	for _, id := range ids {
		if _, ok := codes[id]; !ok {
			return nil, fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, id)
		}
	}
	return codes, nil
}

// CreateInvoice computes every line's net/VAT/gross and the header totals
// server-side, validates any client-supplied totals, and persists header and
// lines as one atomic write.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLine, error) {
	if len(req.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: invoice must have at least one line", apperrors.ErrValidation)
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
	invoiceID := uuid.NewString()

	lines := make([]domain.InvoiceLine, len(req.Lines))
	var totals documentTotals
	for i, lineReq := range req.Lines {
		rate := decimal.Zero
		if lineReq.TaxCodeID != nil {
			rate = taxCodes[*lineReq.TaxCodeID].Rate
		}
		amounts := accounting.CalculateLine(lineReq.Quantity, lineReq.UnitPrice, rate)
		lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
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
		s.LogDebug(ctx, "Invoice totals validation failed", slog.String("error", err.Error()))
		return nil, nil, err
	}

	invoice := domain.Invoice{
		InvoiceID:    invoiceID,
		UserID:       userID,
		Number:       req.Number,
		CustomerName: req.CustomerName,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Status:       domain.InvoiceDraft,
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

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", req.Number))
		return nil, nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_number", req.Number),
		slog.String("total", invoice.Total.StringFixed(2)))
	return &invoice, lines, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, []domain.InvoiceLine, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.invoiceRepo.ListInvoices(ctx, userID, limit, offset)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	invoice, _, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	if !invoice.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move invoice from %s to %s",
			apperrors.ErrValidation, invoice.Status, status)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, userID, invoiceID, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update invoice status", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	invoice.Status = status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	s.LogInfo(ctx, "Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(status)))
	return invoice, nil
}
