package services

import (
	portsrepo "github.com/ledgerline/ledgerline_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, hmrc HMRCGateway) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.TaxCode = NewTaxCodeService(repos.TaxCodeRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.TaxCodeRepo)
	container.Bill = NewBillService(repos.BillRepo, repos.TaxCodeRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.VAT = NewVATService(repos.InvoiceRepo, repos.BillRepo, hmrc)
	container.Reconciliation = NewReconciliationService(repos.BankTxnRepo, repos.InvoiceRepo, repos.BillRepo)

	return container
}
