package services

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating financial reports.
// Reports are pure folds over ledger rows: they never mutate state and the
// same inputs always produce the same numbers.
type ReportingSvcFacade interface {
	// TrialBalance summarises per-account debit/credit activity, optionally
	// restricted to [from, to]. Nil bounds leave the range open.
	TrialBalance(ctx context.Context, userID string, from, to *time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss reports income and expense flow for [from, to].
	ProfitAndLoss(ctx context.Context, userID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet reports cumulative asset/liability/equity balances as of
	// asOf: every posting up to and including that date counts.
	BalanceSheet(ctx context.Context, userID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
