package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is a single debit or credit entry in a new journal.
// Exactly one of debit/credit must be positive; the service rejects anything else.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalRequest defines the data needed to post a new journal.
type CreateJournalRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Reference   string                     `json:"reference"`
	Description string                     `json:"description" binding:"required"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               time.Time             `json:"date"`
	Reference          string                `json:"reference"`
	Description        string                `json:"description"`
	Status             domain.JournalStatus  `json:"status"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	Lines              []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalResponse converts a domain.Journal and its lines to a JournalResponse DTO.
func ToJournalResponse(j *domain.Journal, lines []domain.JournalLine) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Reference:          j.Reference,
		Description:        j.Description,
		Status:             j.Status,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:    line.LineID,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		})
	}
	return resp
}

// ListJournalsResponse wraps a page of journals with the next pagination token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
