package pgsql

import (
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every PostgreSQL repository on one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerStore: newPgxLedgerStore(pool),
		AccountRepo: newPgxAccountRepository(pool),
		ExpenseRepo: newPgxExpenseRepository(pool),
		CreditRepo:  newPgxCreditRepository(pool),
		UserRepo:    newPgxUserRepository(pool),
	}
}
