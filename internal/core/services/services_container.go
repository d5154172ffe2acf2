package services

import (
	"context"

	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Background work started by the services stops when ctx is done.
func NewServiceContainer(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	window := cfg.EditWindow

	container := &portssvc.ServiceContainer{}
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.Account = NewAccountService(repos.LedgerStore, repos.AccountRepo, WithUserReader(repos.UserRepo))
	container.Expense = NewExpenseService(repos.LedgerStore, repos.ExpenseRepo, repos.AccountRepo, WithExpenseEditWindow(window))
	container.Credit = NewCreditService(repos.LedgerStore, repos.CreditRepo, repos.AccountRepo, WithCreditEditWindow(window))
	container.Reconciliation = NewReconciliationService(repos.LedgerStore, repos.AccountRepo,
		WithReconciliationTimeout(cfg.ReconcileTimeout),
		WithShutdownContext(ctx),
	)
	container.Dashboard = NewDashboardService(repos.AccountRepo)
	return container
}
