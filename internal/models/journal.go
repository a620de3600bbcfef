package models

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

// Journal represents a row in the journals table.
type Journal struct {
	JournalID          string        `db:"journal_id"`
	UserID             string        `db:"user_id"`
	JournalDate        time.Time     `db:"journal_date"`
	Reference          string        `db:"reference"`
	Description        string        `db:"description"`
	Status             JournalStatus `db:"status"`
	OriginalJournalID  *string       `db:"original_journal_id"`
	ReversingJournalID *string       `db:"reversing_journal_id"`
	AuditFields
}

// JournalLine represents a row in the journal_lines table. Exactly one of
// debit/credit is positive, the other zero; enforced before any insert.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	JournalID string          `db:"journal_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	AuditFields
}
