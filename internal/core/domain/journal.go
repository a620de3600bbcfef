package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// lines. Journals are append-only: a posted line is never edited in place,
// corrections are new reversing journals linked through OriginalJournalID.
type Journal struct {
	JournalID          string        `json:"journalID"`   // Primary Key (UUID)
	UserID             string        `json:"userID"`      // Owning user
	JournalDate        time.Time     `json:"journalDate"` // Date the event occurred
	Reference          string        `json:"reference"`   // e.g. invoice number, bank ref
	Description        string        `json:"description"`
	Status             JournalStatus `json:"status"` // Default: Posted
	OriginalJournalID  *string       `json:"originalJournalID,omitempty"`
	ReversingJournalID *string       `json:"reversingJournalID,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit entry within a Journal, affecting
// one account. Exactly one of Debit/Credit is strictly positive; the other
// is exactly zero.
type JournalLine struct {
	LineID    string          `json:"lineID"`    // Primary Key (UUID)
	JournalID string          `json:"journalID"` // FK -> Journal.journalID
	AccountID string          `json:"accountID"` // FK -> Account.accountID
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	AuditFields
}
