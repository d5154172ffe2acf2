package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// ExpenseLedgerSvc defines the expense mutations that move the account aggregate.
type ExpenseLedgerSvc interface {
	// RecordExpense debits an account after the balance and budget checks.
	RecordExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// UpdateExpense edits an expense, applying the amount difference to the aggregate.
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense removes an expense and gives its amount back to the account.
	DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error
}

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
	// ExportExpenses returns every visible expense matching the filter with its account name.
	ExportExpenses(ctx context.Context, actor domain.Actor, filter domain.ExpenseFilter) ([]domain.ExpenseExportRow, error)
}

// ExpenseAnnotationSvc defines expense updates that leave the aggregate untouched.
type ExpenseAnnotationSvc interface {
	// AttachJustification records the stored attachment path of an expense.
	AttachJustification(ctx context.Context, actor domain.Actor, expenseID string, path string) (*domain.Expense, error)

	// SetInvoiceSelection toggles the invoice flag of the visible expenses among ids.
	SetInvoiceSelection(ctx context.Context, actor domain.Actor, req dto.InvoiceSelectionRequest) (int64, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseLedgerSvc
	ExpenseReaderSvc
	ExpenseAnnotationSvc
}

// CreditSvcFacade defines credit operations.
type CreditSvcFacade interface {
	// RecordCredit credits an account. No upper bound applies.
	RecordCredit(ctx context.Context, actor domain.Actor, accountID string, req dto.CreateCreditRequest) (*domain.Credit, error)

	// DeleteCredit removes a credit, rejected when its amount has already been spent.
	DeleteCredit(ctx context.Context, actor domain.Actor, kind domain.CreditKind, creditID string) error

	// ListCredits returns the credits of an account visible to the actor.
	ListCredits(ctx context.Context, actor domain.Actor, accountID string) ([]domain.Credit, error)
}

// ReconciliationSvc recomputes account aggregates from the ledger entries.
type ReconciliationSvc interface {
	// ReconcileAll checks every account, each in its own transaction.
	ReconcileAll(ctx context.Context, dryRun bool) (*domain.ReconciliationReport, error)

	// ReconcileAccount checks a single account.
	ReconcileAccount(ctx context.Context, accountID string, dryRun bool) (*domain.AccountCorrection, error)
}

// DashboardSvc builds read-only summaries of the account aggregates.
type DashboardSvc interface {
	Summary(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error)
}
