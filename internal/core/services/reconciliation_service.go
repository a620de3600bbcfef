package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_app/internal/dto"
	"github.com/ledgerline/ledgerline_app/internal/utils/accounting"
)

// reconciliationService matches bank transactions against open invoices and
// bills. Suggestion is pure; only CommitMatch mutates, and only one row.
type reconciliationService struct {
	BaseService
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
	billRepo    portsrepo.BillReader
}

// NewReconciliationService creates a new ReconciliationSvcFacade implementation.
func NewReconciliationService(
	bankTxnRepo portsrepo.BankTransactionRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
	billRepo portsrepo.BillReader,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		bankTxnRepo: bankTxnRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SuggestMatches proposes targets for one transaction. Money in is matched
// against open invoices, money out against open bills; a zero amount is
// ambiguous and yields nothing. A candidate qualifies on amount (within
// tolerance) or on its number/name appearing in the transaction description,
// case-insensitively. Exact-amount matches are listed first, each group in
// document-date order. Advisory only.
func SuggestMatches(txn domain.BankTransaction, openInvoices []domain.Invoice, openBills []domain.Bill) []domain.MatchSuggestion {
	suggestions := []domain.MatchSuggestion{}
	if txn.Amount.IsZero() {
		return suggestions
	}

	desc := strings.ToLower(txn.Description)

	if txn.Amount.IsPositive() {
		for _, inv := range openInvoices {
			var criteria []string
			diff := inv.Total.Sub(txn.Amount)
			if diff.Abs().LessThanOrEqual(accounting.Epsilon) {
				criteria = append(criteria, domain.CriterionAmount)
			}
			if containsFold(desc, inv.Number) || containsFold(desc, inv.CustomerName) {
				criteria = append(criteria, domain.CriterionReference)
			}
			if len(criteria) == 0 {
				continue
			}
			suggestions = append(suggestions, domain.MatchSuggestion{
				TransactionID:    txn.TransactionID,
				TargetType:       domain.MatchInvoice,
				TargetID:         inv.InvoiceID,
				TargetNumber:     inv.Number,
				TargetName:       inv.CustomerName,
				TargetTotal:      inv.Total,
				AmountDifference: diff.Abs(),
				MatchCriteria:    criteria,
			})
		}
		return orderSuggestions(suggestions)
	}

	for _, bill := range openBills {
		var criteria []string
		diff := bill.Total.Add(txn.Amount)
		if diff.Abs().LessThanOrEqual(accounting.Epsilon) {
			criteria = append(criteria, domain.CriterionAmount)
		}
		if containsFold(desc, bill.Reference) || containsFold(desc, bill.SupplierName) {
			criteria = append(criteria, domain.CriterionReference)
		}
		if len(criteria) == 0 {
			continue
		}
		suggestions = append(suggestions, domain.MatchSuggestion{
			TransactionID:    txn.TransactionID,
			TargetType:       domain.MatchBill,
			TargetID:         bill.BillID,
			TargetNumber:     bill.Reference,
			TargetName:       bill.SupplierName,
			TargetTotal:      bill.Total,
			AmountDifference: diff.Abs(),
			MatchCriteria:    criteria,
		})
	}
	return orderSuggestions(suggestions)
}

// orderSuggestions moves amount matches ahead of reference-only matches.
// The stable sort keeps the repositories' document-date order within each
// group, so older exact-amount candidates surface first.
func orderSuggestions(suggestions []domain.MatchSuggestion) []domain.MatchSuggestion {
	matchedOnAmount := func(s domain.MatchSuggestion) bool {
		return slices.Contains(s.MatchCriteria, domain.CriterionAmount)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return matchedOnAmount(suggestions[i]) && !matchedOnAmount(suggestions[j])
	})
	return suggestions
}

// containsFold reports whether needle appears in loweredHaystack,
// case-insensitively. Empty needles never match.
func containsFold(loweredHaystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(loweredHaystack, strings.ToLower(needle))
}

func (s *reconciliationService) ImportTransactions(ctx context.Context, userID string, req dto.ImportBankTransactionsRequest) ([]domain.BankTransaction, error) {
	if len(req.Transactions) == 0 {
		return nil, fmt.Errorf("%w: import batch is empty", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txns := make([]domain.BankTransaction, len(req.Transactions))
	for i, rec := range req.Transactions {
		txns[i] = domain.BankTransaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Date:          rec.Date,
			Description:   rec.Description,
			Amount:        rec.Amount,
			Reference:     rec.Reference,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.bankTxnRepo.SaveBankTransactions(ctx, txns); err != nil {
		s.LogError(ctx, err, "Failed to import bank transactions", slog.Int("count", len(txns)))
		return nil, fmt.Errorf("failed to import bank transactions: %w", err)
	}

	s.LogInfo(ctx, "Bank transactions imported", slog.Int("count", len(txns)))
	return txns, nil
}

func (s *reconciliationService) ListTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.bankTxnRepo.ListBankTransactions(ctx, userID, reconciled, limit, offset)
}

func (s *reconciliationService) SuggestMatches(ctx context.Context, userID, transactionID string) ([]domain.MatchSuggestion, error) {
	txn, err := s.bankTxnRepo.FindBankTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Reconciled {
		return []domain.MatchSuggestion{}, nil
	}

	var openInvoices []domain.Invoice
	var openBills []domain.Bill
	if txn.Amount.IsPositive() {
		openInvoices, err = s.invoiceRepo.ListOpenInvoices(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch open invoices for matching")
			return nil, fmt.Errorf("failed to fetch open invoices: %w", err)
		}
	} else if txn.Amount.IsNegative() {
		openBills, err = s.billRepo.ListOpenBills(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch open bills for matching")
			return nil, fmt.Errorf("failed to fetch open bills: %w", err)
		}
	}

	return SuggestMatches(*txn, openInvoices, openBills), nil
}

// CommitMatch links the transaction to one target and marks it reconciled.
// The guard lives in the store's conditional update, so two concurrent
// commits cannot both succeed; the loser sees ErrAlreadyReconciled.
func (s *reconciliationService) CommitMatch(ctx context.Context, userID, transactionID string, targetType domain.MatchTargetType, targetID string) (*domain.BankTransaction, error) {
	txn, err := s.bankTxnRepo.FindBankTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Reconciled {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrAlreadyReconciled, transactionID)
	}

	var invoiceID, billID *string
	switch targetType {
	case domain.MatchInvoice:
		if _, _, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, targetID); err != nil {
			return nil, err
		}
		invoiceID = &targetID
	case domain.MatchBill:
		if _, _, err := s.billRepo.FindBillByID(ctx, userID, targetID); err != nil {
			return nil, err
		}
		billID = &targetID
	default:
		return nil, fmt.Errorf("%w: unknown match target type %q", apperrors.ErrValidation, targetType)
	}

	now := time.Now().UTC()
	if err := s.bankTxnRepo.MarkReconciled(ctx, userID, transactionID, invoiceID, billID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReconciled) {
			s.LogError(ctx, err, "Failed to commit reconciliation match", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	txn.Reconciled = true
	txn.InvoiceID = invoiceID
	txn.BillID = billID
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	s.LogInfo(ctx, "Bank transaction reconciled",
		slog.String("transaction_id", transactionID),
		slog.String("target_type", string(targetType)),
		slog.String("target_id", targetID))
	return txn, nil
}
