package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// AccountLocker serializes mutations of one account.
type AccountLocker interface {
	// LockAccount reads the account row with SELECT ... FOR UPDATE.
	// Inactive accounts are returned as well; ErrNotFound if the row does not exist.
	LockAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// AggregateWriter is the only write path to the cached account totals.
type AggregateWriter interface {
	// ApplyAggregateDelta adds delta to the account's cached totals.
	ApplyAggregateDelta(ctx context.Context, accountID string, delta domain.AggregateDelta, userID string, now time.Time) error

	// OverwriteAggregate replaces the cached totals with recomputed ones.
	OverwriteAggregate(ctx context.Context, accountID string, totals domain.LedgerTotals, now time.Time) error

	// SumLedger recomputes the account totals from its expense and credit rows.
	SumLedger(ctx context.Context, accountID string) (domain.LedgerTotals, error)
}

// ExpenseEntryWriter mutates expense rows inside a ledger transaction.
type ExpenseEntryWriter interface {
	InsertExpense(ctx context.Context, expense domain.Expense) error
	FindExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	// FindExpenseForUpdate must only be called once the owning account is locked.
	FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// CreditEntryWriter mutates credit rows inside a ledger transaction.
type CreditEntryWriter interface {
	InsertCredit(ctx context.Context, credit domain.Credit) error
	FindCredit(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error)
	// FindCreditForUpdate must only be called once the owning account is locked.
	FindCreditForUpdate(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error)
	DeleteCredit(ctx context.Context, kind domain.CreditKind, creditID string) error
}

// AccountLifecycleWriter creates and removes account rows inside a ledger transaction.
type AccountLifecycleWriter interface {
	InsertAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount removes the account together with its credit rows.
	DeleteAccount(ctx context.Context, accountID string) error
}

// LedgerTx is the set of operations available inside one ledger transaction.
// Lock order is always account row first, then the entry row.
type LedgerTx interface {
	AccountLocker
	AggregateWriter
	ExpenseEntryWriter
	CreditEntryWriter
	AccountLifecycleWriter
}

// LedgerStore runs ledger mutations atomically.
type LedgerStore interface {
	// WithinTx runs fn in a single read-committed transaction.
	// Any error returned by fn rolls back every write made through tx.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
