package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five ledger account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within the core domain.
// AccountType is immutable after creation: changing it would silently
// reinterpret every historical report that already folded this account.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	UserID      string      `json:"userID"`      // Owning user (row-level scope)
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Code        string      `json:"code"`        // Optional short code (e.g. "1010")
	Description string      `json:"description"` // Nullable user description
	IsActive    bool        `json:"isActive"`
	AuditFields
}
