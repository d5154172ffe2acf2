package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerStore runs ledger mutations in one read-committed transaction each.
// The account row lock taken by LockAccount serializes writers of the same account.
type PgxLedgerStore struct {
	BaseRepository
}

func newPgxLedgerStore(pool *pgxpool.Pool) *PgxLedgerStore {
	return &PgxLedgerStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// WithinTx runs fn in a transaction; any error rolls back every write made through tx.
func (s *PgxLedgerStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgxLedgerTx{tx: tx})
	})
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return selectAccount(ctx, t.tx, accountID, true)
}

func (t *pgxLedgerTx) ApplyAggregateDelta(ctx context.Context, accountID string, delta domain.AggregateDelta, userID string, now time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET current_balance = current_balance + $2,
		    total_credited = total_credited + $3,
		    total_spent = total_spent + $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1`,
		accountID, delta.Balance, delta.Credited, delta.Spent, now, userID,
	)
	if err != nil {
		return mapPgError(err, "aggregate of account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (t *pgxLedgerTx) OverwriteAggregate(ctx context.Context, accountID string, totals domain.LedgerTotals, now time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET current_balance = $2, total_credited = $3, total_spent = $4, last_updated_at = $5
		WHERE account_id = $1`,
		accountID, totals.Balance(), totals.TotalCredited, totals.TotalSpent, now,
	)
	if err != nil {
		return mapPgError(err, "aggregate of account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (t *pgxLedgerTx) SumLedger(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	var totals domain.LedgerTotals
	err := t.tx.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(total), 0)::BIGINT FROM expenses WHERE account_id = $1),
			(SELECT COALESCE(SUM(amount), 0)::BIGINT FROM credit_history WHERE account_id = $1)
			+ (SELECT COALESCE(SUM(amount), 0)::BIGINT FROM special_credit_history WHERE account_id = $1)`,
		accountID,
	).Scan(&totals.TotalSpent, &totals.TotalCredited)
	if err != nil {
		return domain.LedgerTotals{}, mapPgError(err, "ledger sums of account "+accountID)
	}
	return totals, nil
}

func (t *pgxLedgerTx) InsertExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.ExpenseID, m.AccountID, m.Total, m.ExpenseDate, m.Designation, m.Supplier, m.Category, m.Subcategory,
		m.ExpenseType, m.Description, m.Quantity, m.UnitPrice, m.JustificationPath, m.SelectedForInvoice,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "expense "+expense.ExpenseID)
}

func (t *pgxLedgerTx) FindExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return selectExpense(ctx, t.tx, expenseID, false)
}

func (t *pgxLedgerTx) FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return selectExpense(ctx, t.tx, expenseID, true)
}

// UpdateExpense rewrites the editable columns. account_id and the invoice flag are not changed here.
func (t *pgxLedgerTx) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	tag, err := t.tx.Exec(ctx, `
		UPDATE expenses
		SET total = $2, expense_date = $3, designation = $4, supplier = $5, category = $6, subcategory = $7,
		    expense_type = $8, description = $9, quantity = $10, unit_price = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE expense_id = $1`,
		m.ExpenseID, m.Total, m.ExpenseDate, m.Designation, m.Supplier, m.Category, m.Subcategory,
		m.ExpenseType, m.Description, m.Quantity, m.UnitPrice, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "expense "+expense.ExpenseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expense.ExpenseID)
	}
	return nil
}

func (t *pgxLedgerTx) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1`, expenseID)
	if err != nil {
		return mapPgError(err, "expense "+expenseID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

func (t *pgxLedgerTx) InsertCredit(ctx context.Context, credit domain.Credit) error {
	table, err := creditTable(credit.Kind)
	if err != nil {
		return err
	}
	m := mapping.ToModelCredit(credit)
	_, err = t.tx.Exec(ctx, `
		INSERT INTO `+table+` (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.CreditID, m.AccountID, m.Amount, m.CreditDate, m.Description, m.IsInitial,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "credit "+credit.CreditID)
}

func (t *pgxLedgerTx) FindCredit(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error) {
	return selectCredit(ctx, t.tx, kind, creditID, false)
}

func (t *pgxLedgerTx) FindCreditForUpdate(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error) {
	return selectCredit(ctx, t.tx, kind, creditID, true)
}

func (t *pgxLedgerTx) DeleteCredit(ctx context.Context, kind domain.CreditKind, creditID string) error {
	table, err := creditTable(kind)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `DELETE FROM `+table+` WHERE credit_id = $1`, creditID)
	if err != nil {
		return mapPgError(err, "credit "+creditID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
	}
	return nil
}

func (t *pgxLedgerTx) InsertAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.AccountID, m.AccountName, m.AccountType, m.OwnerUserID, m.CurrentBalance, m.TotalCredited, m.TotalSpent,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "account "+account.AccountName)
}

// DeleteAccount removes the account; credit rows go with it through ON DELETE CASCADE,
// expense rows block it through ON DELETE RESTRICT.
func (t *pgxLedgerTx) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return mapPgError(err, "account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
