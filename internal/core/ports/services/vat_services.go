package services

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// VATSvcFacade defines operations for the 9-box VAT return.
type VATSvcFacade interface {
	// CalculateReturn derives the nine boxes from invoices and bills dated
	// within [from, to]. Pure with respect to ledger state.
	CalculateReturn(ctx context.Context, userID string, from, to time.Time) (*domain.VATReturn, error)

	// ListObligations fetches the user's VAT filing windows from the tax
	// authority. Failures are reported verbatim; there is no local retry.
	ListObligations(ctx context.Context, userID string) ([]domain.VATObligation, error)

	// SubmitReturn recalculates the boxes for the obligation period and
	// submits them as finalised. The receipt is returned to the caller to
	// persist; submissions are never retried internally, since a duplicate
	// VAT submission is worse than a reported failure.
	SubmitReturn(ctx context.Context, userID, periodKey string, from, to time.Time) (*domain.VATReturn, *domain.VATSubmissionReceipt, error)
}
