package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		BillRepo:      newPgxBillRepository(dbPool),
		TaxCodeRepo:   newPgxTaxCodeRepository(dbPool),
		BankTxnRepo:   newPgxBankTransactionRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
