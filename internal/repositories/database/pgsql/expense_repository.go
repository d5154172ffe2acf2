package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/models"
	"github.com/SscSPs/expense_tracker_app/internal/utils/mapping"
	"github.com/SscSPs/expense_tracker_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, account_id, total, expense_date, designation, supplier, category, subcategory,
	expense_type, description, quantity, unit_price, justification_path, selected_for_invoice,
	created_at, created_by, last_updated_at, last_updated_by`

const expenseOrder = ` ORDER BY expense_date DESC, created_at DESC, expense_id DESC`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.AccountID,
		&m.Total,
		&m.ExpenseDate,
		&m.Designation,
		&m.Supplier,
		&m.Category,
		&m.Subcategory,
		&m.ExpenseType,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.JustificationPath,
		&m.SelectedForInvoice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	return mapping.ToDomainExpense(m), nil
}

func selectExpense(ctx context.Context, db dbtx, expenseID string, forUpdate bool) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	exp, err := scanExpense(db.QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, mapPgError(err, "expense "+expenseID)
	}
	return &exp, nil
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	defer rows.Close()
	expenses := []domain.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// expenseConditions turns filter into WHERE predicates with positional arguments.
func expenseConditions(filter domain.ExpenseFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if filter.AccountID != "" {
		add("account_id = ?", filter.AccountID)
	}
	if filter.AccountIDs != nil {
		add("account_id = ANY(?)", filter.AccountIDs)
	}
	if filter.CreatedBy != "" {
		add("created_by = ?", filter.CreatedBy)
	}
	if filter.Category != "" {
		add("category = ?", filter.Category)
	}
	if filter.From != nil {
		add("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		add("expense_date <= ?", *filter.To)
	}
	if filter.SelectedForInvoice != nil {
		add("selected_for_invoice = ?", *filter.SelectedForInvoice)
	}
	return conds, args
}

// FindExpenseByID retrieves a single expense.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return selectExpense(ctx, r.Pool, expenseID, false)
}

// ListExpenses returns one page of expenses, newest first, and the token of the next page.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	conds, args := expenseConditions(filter)

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		n := len(args)
		conds = append(conds, fmt.Sprintf("(expense_date, created_at, expense_id) < ($%d, $%d, $%d)", n+1, n+2, n+3))
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	// Fetch one extra row to know whether another page exists
	args = append(args, limit+1)
	query += expenseOrder + ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query expenses", err)
	}
	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to read expenses", err)
	}

	var next *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(pagination.Cursor{
			SortDate:  last.ExpenseDate,
			CreatedAt: last.CreatedAt,
			ID:        last.ExpenseID,
		})
		next = &token
	}
	return expenses, next, nil
}

// ExportExpenses returns every expense matching the filter in listing order.
func (r *PgxExpenseRepository) ExportExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	conds, args := expenseConditions(filter)
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += expenseOrder

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for export: %w", err)
	}
	return collectExpenses(rows)
}

// SetJustification stores the attachment path of an expense.
func (r *PgxExpenseRepository) SetJustification(ctx context.Context, expenseID string, path string, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET justification_path = $2, last_updated_at = $3, last_updated_by = $4
		WHERE expense_id = $1`, expenseID, path, now, userID)
	if err != nil {
		return mapPgError(err, "expense "+expenseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

// SetInvoiceSelection toggles selected_for_invoice; rows already in the requested state are not counted.
func (r *PgxExpenseRepository) SetInvoiceSelection(ctx context.Context, expenseIDs []string, selected bool, userID string, now time.Time) (int64, error) {
	if len(expenseIDs) == 0 {
		return 0, nil
	}
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET selected_for_invoice = $2, last_updated_at = $3, last_updated_by = $4
		WHERE expense_id = ANY($1) AND selected_for_invoice <> $2`, expenseIDs, selected, now, userID)
	if err != nil {
		return 0, mapPgError(err, "invoice selection")
	}
	return tag.RowsAffected(), nil
}
