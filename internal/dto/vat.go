package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// SubmitVATReturnRequest identifies the obligation period being filed.
type SubmitVATReturnRequest struct {
	PeriodKey string    `json:"periodKey" binding:"required"`
	From      time.Time `json:"from" binding:"required"`
	To        time.Time `json:"to" binding:"required"`
}

// VATSubmissionResponse bundles the submitted return with the tax
// authority's receipt, for the caller to persist.
type VATSubmissionResponse struct {
	Return  domain.VATReturn            `json:"return"`
	Receipt domain.VATSubmissionReceipt `json:"receipt"`
}
