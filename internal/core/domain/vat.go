package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATReturn holds the nine statutory boxes of a UK MTD VAT return for a
// period. The calculation is pure: the same documents and range always
// produce the same nine numbers, so a return can be replayed for audit.
type VATReturn struct {
	PeriodKey string          `json:"periodKey,omitempty"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Box1      decimal.Decimal `json:"box1"` // VAT due on sales
	Box2      decimal.Decimal `json:"box2"` // VAT due on acquisitions (always zero)
	Box3      decimal.Decimal `json:"box3"` // Box1 + Box2
	Box4      decimal.Decimal `json:"box4"` // VAT reclaimed on purchases
	Box5      decimal.Decimal `json:"box5"` // Box3 - Box4; negative means reclaim
	Box6      decimal.Decimal `json:"box6"` // Total sales ex-VAT
	Box7      decimal.Decimal `json:"box7"` // Total purchases ex-VAT
	Box8      decimal.Decimal `json:"box8"` // EU supplies (always zero)
	Box9      decimal.Decimal `json:"box9"` // EU acquisitions (always zero)
	Finalised bool            `json:"finalised"`
}

// VATObligationStatus mirrors the tax authority's obligation status codes.
type VATObligationStatus string

const (
	ObligationOpen      VATObligationStatus = "O"
	ObligationFulfilled VATObligationStatus = "F"
)

// VATObligation is a filing window fetched from the tax authority. The
// engine only consumes its period boundaries to scope date-range queries.
type VATObligation struct {
	PeriodKey string              `json:"periodKey"`
	Start     time.Time           `json:"start"`
	End       time.Time           `json:"end"`
	Due       time.Time           `json:"due"`
	Status    VATObligationStatus `json:"status"`
}

// VATSubmissionReceipt is the tax authority's acknowledgement of a submitted
// return; the caller persists it alongside the originating period.
type VATSubmissionReceipt struct {
	ProcessingDate   time.Time `json:"processingDate"`
	FormBundleNumber string    `json:"formBundleNumber"`
}
