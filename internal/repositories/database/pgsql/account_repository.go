package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/models"
	"github.com/SscSPs/expense_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, account_name, account_type, owner_user_id, current_balance, total_credited, total_spent,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountName,
		&m.AccountType,
		&m.OwnerUserID,
		&m.CurrentBalance,
		&m.TotalCredited,
		&m.TotalSpent,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// selectAccount reads one account, locking the row when forUpdate is set.
func selectAccount(ctx context.Context, db dbtx, accountID string, forUpdate bool) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	acc, err := scanAccount(db.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapPgError(err, "account "+accountID)
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return selectAccount(ctx, r.Pool, accountID, false)
}

// ListAccounts retrieves accounts matching filter, ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if filter.OwnerUserID != "" {
		add("owner_user_id = ?", filter.OwnerUserID)
	}
	if filter.AccountType != "" {
		add("account_type = ?", string(filter.AccountType))
	}
	if !filter.IncludeInactive {
		conds = append(conds, "is_active")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY account_name, account_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccountIDs returns every account id, active or not.
func (r *PgxAccountRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT account_id FROM accounts ORDER BY account_name, account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect account ids: %w", err)
	}
	return ids, nil
}

// UpdateAccountDetails updates the descriptive columns. The aggregate columns are left alone.
func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts
		SET account_name = $2, account_type = $3, owner_user_id = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1`,
		m.AccountID, m.AccountName, m.AccountType, m.OwnerUserID, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "account "+account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1`, accountID, now, userID)
	if err != nil {
		return mapPgError(err, "account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
