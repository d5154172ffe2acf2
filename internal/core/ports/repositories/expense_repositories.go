package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses returns one page ordered by expense_date, created_at descending,
	// plus the token of the next page when there is one.
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ExportExpenses returns every expense matching the filter, in listing order.
	ExportExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
}

// ExpenseAnnotationWriter writes expense fields that do not affect the aggregate.
type ExpenseAnnotationWriter interface {
	// SetJustification stores the attachment path of an expense.
	SetJustification(ctx context.Context, expenseID string, path string, userID string, now time.Time) error

	// SetInvoiceSelection toggles selected_for_invoice for the given ids and returns the number of rows changed.
	SetInvoiceSelection(ctx context.Context, expenseIDs []string, selected bool, userID string, now time.Time) (int64, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseAnnotationWriter
}
