package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline_app/internal/apperrors"
	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_app/internal/models"
	"github.com/ledgerline/ledgerline_app/internal/utils/mapping"
)

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for bank statement lines.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const bankTxnColumns = `transaction_id, user_id, txn_date, description, amount, reference, reconciled, invoice_id, bill_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBankTransaction(row pgx.Row) (models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Date,
		&m.Description,
		&m.Amount,
		&m.Reference,
		&m.Reconciled,
		&m.InvoiceID,
		&m.BillID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBankTransactions inserts an imported batch in one database transaction.
func (r *PgxBankTransactionRepository) SaveBankTransactions(ctx context.Context, txns []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO bank_transactions (` + bankTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelBankTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.UserID,
			m.Date,
			m.Description,
			m.Amount,
			m.Reference,
			m.Reconciled,
			m.InvoiceID,
			m.BillID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert bank transactions", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close bank transaction batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindBankTransactionByID retrieves a transaction owned by userID.
func (r *PgxBankTransactionRepository) FindBankTransactionByID(ctx context.Context, userID, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE transaction_id = $1 AND user_id = $2;`

	m, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find bank transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainBankTransaction(m)
	return &txn, nil
}

// ListBankTransactions retrieves transactions newest first, optionally
// filtered by reconciliation status.
func (r *PgxBankTransactionRepository) ListBankTransactions(ctx context.Context, userID string, reconciled *bool, limit, offset int) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE user_id = $1`
	args := []any{userID}

	if reconciled != nil {
		query += fmt.Sprintf(` AND reconciled = $%d`, len(args)+1)
		args = append(args, *reconciled)
	}
	query += fmt.Sprintf(` ORDER BY txn_date DESC, transaction_id LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	var ms []models.BankTransaction
	for rows.Next() {
		m, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank transaction rows: %w", err)
	}
	return mapping.ToDomainBankTransactionSlice(ms), nil
}

// MarkReconciled links the transaction to its target and flips the
// reconciled flag. The WHERE clause only matches an unreconciled row, so of
// two concurrent commits exactly one sees an affected row; the other gets
// ErrAlreadyReconciled.
func (r *PgxBankTransactionRepository) MarkReconciled(ctx context.Context, userID, transactionID string, invoiceID, billID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_transactions
		SET reconciled = TRUE, invoice_id = $1, bill_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $5 AND user_id = $6 AND reconciled = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, billID, updatedAt, updatedBy, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction reconciled %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is already reconciled or it does not exist; look
		// once more to tell the two apart.
		var exists bool
		checkErr := r.Pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM bank_transactions WHERE transaction_id = $1 AND user_id = $2);`,
			transactionID, userID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to check bank transaction %s: %w", transactionID, checkErr)
		}
		if !exists {
			return fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return fmt.Errorf("%w: bank transaction %s", apperrors.ErrAlreadyReconciled, transactionID)
	}
	return nil
}
