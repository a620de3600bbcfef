package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/utils/accounting"
)

// reportingService generates financial reports as pure folds over ledger
// rows. The repository supplies flat rows; everything else happens in
// memory, so the same rows always produce the same report.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingSvcFacade implementation.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// accountTotals accumulates per-account debit/credit sums during a fold.
type accountTotals struct {
	AccountID   string
	AccountName string
	AccountType domain.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// foldByAccount groups ledger rows by account, preserving a deterministic
// order: account name, then ID as the tiebreak.
func foldByAccount(rows []domain.LedgerRow) []accountTotals {
	byID := make(map[string]*accountTotals)
	for _, row := range rows {
		totals, ok := byID[row.AccountID]
		if !ok {
			totals = &accountTotals{
				AccountID:   row.AccountID,
				AccountName: row.AccountName,
				AccountType: row.AccountType,
			}
			byID[row.AccountID] = totals
		}
		totals.Debit = totals.Debit.Add(row.Debit)
		totals.Credit = totals.Credit.Add(row.Credit)
	}

	out := make([]accountTotals, 0, len(byID))
	for _, totals := range byID {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountName != out[j].AccountName {
			return out[i].AccountName < out[j].AccountName
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out
}

// BuildTrialBalance folds ledger rows into per-account debit/credit totals.
// An unbalanced result is reported, not rejected: it signals corrupted data
// upstream and the caller must be able to see it.
func BuildTrialBalance(rows []domain.LedgerRow) *domain.TrialBalanceReport {
	report := &domain.TrialBalanceReport{Rows: []domain.TrialBalanceRow{}}
	for _, totals := range foldByAccount(rows) {
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   totals.AccountID,
			AccountName: totals.AccountName,
			AccountType: totals.AccountType,
			Debit:       totals.Debit,
			Credit:      totals.Credit,
		})
		report.TotalDebits = report.TotalDebits.Add(totals.Debit)
		report.TotalCredits = report.TotalCredits.Add(totals.Credit)
	}
	report.Discrepancy = report.TotalDebits.Sub(report.TotalCredits).Abs()
	report.Balanced = report.Discrepancy.LessThanOrEqual(accounting.Epsilon)
	return report
}

// BuildProfitAndLoss folds period rows into income and expense sections.
// Income accounts report credit minus debit; expense accounts debit minus
// credit, so both sections read as positive in the normal case. Accounts
// whose activity nets to zero are omitted.
func BuildProfitAndLoss(rows []domain.LedgerRow) *domain.PAndLReport {
	report := &domain.PAndLReport{
		Income:   []domain.AccountAmount{},
		Expenses: []domain.AccountAmount{},
	}
	for _, totals := range foldByAccount(rows) {
		switch totals.AccountType {
		case domain.Income:
			net := totals.Credit.Sub(totals.Debit)
			if net.IsZero() {
				continue
			}
			report.Income = append(report.Income, domain.AccountAmount{
				AccountID: totals.AccountID,
				Name:      totals.AccountName,
				NetAmount: net,
			})
			report.TotalIncome = report.TotalIncome.Add(net)
		case domain.Expense:
			net := totals.Debit.Sub(totals.Credit)
			if net.IsZero() {
				continue
			}
			report.Expenses = append(report.Expenses, domain.AccountAmount{
				AccountID: totals.AccountID,
				Name:      totals.AccountName,
				NetAmount: net,
			})
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}

// BuildBalanceSheet folds cumulative rows into asset, liability and equity
// sections. Assets report debit minus credit; liabilities and equity credit
// minus debit.
func BuildBalanceSheet(rows []domain.LedgerRow) *domain.BalanceSheetReport {
	report := &domain.BalanceSheetReport{
		Assets:      []domain.AccountAmount{},
		Liabilities: []domain.AccountAmount{},
		Equity:      []domain.AccountAmount{},
	}
	for _, totals := range foldByAccount(rows) {
		switch totals.AccountType {
		case domain.Asset:
			net := totals.Debit.Sub(totals.Credit)
			report.Assets = append(report.Assets, domain.AccountAmount{
				AccountID: totals.AccountID,
				Name:      totals.AccountName,
				NetAmount: net,
			})
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			net := totals.Credit.Sub(totals.Debit)
			report.Liabilities = append(report.Liabilities, domain.AccountAmount{
				AccountID: totals.AccountID,
				Name:      totals.AccountName,
				NetAmount: net,
			})
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			net := totals.Credit.Sub(totals.Debit)
			report.Equity = append(report.Equity, domain.AccountAmount{
				AccountID: totals.AccountID,
				Name:      totals.AccountName,
				NetAmount: net,
			})
			report.TotalEquity = report.TotalEquity.Add(net)
		}
	}
	return report
}

func (s *reportingService) TrialBalance(ctx context.Context, userID string, from, to *time.Time) (*domain.TrialBalanceReport, error) {
	var start, before *time.Time
	if from != nil {
		f := dayStartUTC(*from)
		start = &f
	}
	if to != nil {
		b := dayEndExclusiveUTC(*to)
		before = &b
	}
	rows, err := s.reportingRepo.GetLedgerRows(ctx, userID, start, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger rows for trial balance")
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}
	report := BuildTrialBalance(rows)
	if !report.Balanced {
		s.LogError(ctx, fmt.Errorf("ledger out of balance by %s", report.Discrepancy.StringFixed(2)),
			"Trial balance discrepancy detected")
	}
	return report, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, userID string, from, to time.Time) (*domain.PAndLReport, error) {
	start := dayStartUTC(from)
	before := dayEndExclusiveUTC(to)
	rows, err := s.reportingRepo.GetLedgerRows(ctx, userID, &start, &before)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger rows for profit and loss")
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}
	return BuildProfitAndLoss(rows), nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, userID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	// Cumulative from the beginning of the ledger: balance sheet accounts
	// carry forward, so only the upper bound applies. Anything posted during
	// the asOf day itself is still "up to and including that date".
	before := dayEndExclusiveUTC(asOf)
	rows, err := s.reportingRepo.GetLedgerRows(ctx, userID, nil, &before)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger rows for balance sheet")
		return nil, fmt.Errorf("failed to fetch ledger rows: %w", err)
	}
	return BuildBalanceSheet(rows), nil
}
