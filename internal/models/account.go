package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	UserID      string      `db:"user_id"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Code        string      `db:"code"` // Nullable short code
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
