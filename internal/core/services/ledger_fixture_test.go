package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	pcaActor   = domain.Actor{UserID: "pca-1", Role: domain.RolePCA}
	dirActor   = domain.Actor{UserID: "dir-1", Role: domain.RoleDirecteur}
	otherDir   = domain.Actor{UserID: "dir-2", Role: domain.RoleDirecteur}
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type ledgerFixture struct {
	t         *testing.T
	ctx       context.Context
	store     *memStore
	clock     *testClock
	accounts  portssvc.AccountSvcFacade
	expenses  portssvc.ExpenseSvcFacade
	credits   portssvc.CreditSvcFacade
	reconcile portssvc.ReconciliationSvc
	dashboard portssvc.DashboardSvc
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := newMemStore()
	clock := &testClock{now: time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)}
	return &ledgerFixture{
		t:         t,
		ctx:       context.Background(),
		store:     store,
		clock:     clock,
		accounts:  services.NewAccountService(store, store, services.WithAccountClock(clock.Now)),
		expenses:  services.NewExpenseService(store, store, store, services.WithExpenseClock(clock.Now)),
		credits:   services.NewCreditService(store, store, store, services.WithCreditClock(clock.Now)),
		reconcile: services.NewReconciliationService(store, store, services.WithReconciliationClock(clock.Now)),
		dashboard: services.NewDashboardService(store),
	}
}

// openAccount creates an account owned by dirActor with the given starting amount.
func (f *ledgerFixture) openAccount(name string, accountType domain.AccountType, initial int64) domain.Account {
	f.t.Helper()
	owner := dirActor.UserID
	acc, err := f.accounts.CreateAccount(f.ctx, adminActor, dto.CreateAccountRequest{
		AccountName:   name,
		AccountType:   accountType,
		OwnerUserID:   &owner,
		InitialAmount: initial,
	})
	require.NoError(f.t, err)
	return *acc
}

func (f *ledgerFixture) spend(actor domain.Actor, accountID string, amount int64) (*domain.Expense, error) {
	return f.expenses.RecordExpense(f.ctx, actor, dto.CreateExpenseRequest{
		AccountID:   accountID,
		Total:       &amount,
		Designation: "Fournitures",
		Category:    "bureau",
	})
}

func (f *ledgerFixture) credit(accountID string, amount int64) *domain.Credit {
	f.t.Helper()
	c, err := f.credits.RecordCredit(f.ctx, adminActor, accountID, dto.CreateCreditRequest{Amount: amount})
	require.NoError(f.t, err)
	return c
}

// assertAggregate checks the stored aggregate against the expected figures and against the ledger rows.
func (f *ledgerFixture) assertAggregate(accountID string, balance, credited, spent int64) {
	f.t.Helper()
	acc := f.store.account(accountID)
	assert.Equal(f.t, balance, acc.CurrentBalance, "current balance")
	assert.Equal(f.t, credited, acc.TotalCredited, "total credited")
	assert.Equal(f.t, spent, acc.TotalSpent, "total spent")
	f.assertConsistent(accountID)
}

// assertConsistent checks that the aggregate equals the sums of the ledger rows.
func (f *ledgerFixture) assertConsistent(accountID string) {
	f.t.Helper()
	acc := f.store.account(accountID)
	real := f.store.ledgerTotals(accountID)
	assert.Equal(f.t, real.TotalSpent, acc.TotalSpent, "total spent vs expenses")
	assert.Equal(f.t, real.TotalCredited, acc.TotalCredited, "total credited vs credits")
	assert.Equal(f.t, real.Balance(), acc.CurrentBalance, "balance vs credited minus spent")
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
