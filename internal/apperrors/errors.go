package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// Ledger write-time integrity failures. The write is rejected, never auto-corrected.
var (
	// ErrEmptyJournal indicates a journal was submitted with no lines.
	ErrEmptyJournal = errors.New("journal has no lines")

	// ErrInvalidLine indicates a journal line with both debit and credit set, or neither.
	ErrInvalidLine = errors.New("journal line must have exactly one of debit or credit")

	// ErrUnbalanced indicates the journal's debits and credits differ beyond tolerance.
	ErrUnbalanced = errors.New("journal debits and credits do not balance")

	// ErrTotalsMismatch indicates invoice/bill header totals disagree with their lines.
	ErrTotalsMismatch = errors.New("header totals do not match lines")
)

// ErrAlreadyReconciled indicates a bank transaction has already been matched.
// Reconciliation is terminal; the first committed match wins.
var ErrAlreadyReconciled = errors.New("bank transaction already reconciled")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it so handlers can map persistence failures uniformly.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
