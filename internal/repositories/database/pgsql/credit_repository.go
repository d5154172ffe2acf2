package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/models"
	"github.com/SscSPs/expense_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditColumns = `credit_id, account_id, amount, credit_date, description, is_initial,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditRepository struct {
	BaseRepository
}

func newPgxCreditRepository(pool *pgxpool.Pool) *PgxCreditRepository {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditReader = (*PgxCreditRepository)(nil)

// creditTable maps a credit kind to the table holding it.
func creditTable(kind domain.CreditKind) (string, error) {
	switch kind {
	case domain.OrdinaryCredit:
		return "credit_history", nil
	case domain.SpecialCredit:
		return "special_credit_history", nil
	}
	return "", fmt.Errorf("%w: unknown credit kind %q", apperrors.ErrValidation, kind)
}

func scanCredit(row pgx.Row, kind domain.CreditKind) (domain.Credit, error) {
	var m models.Credit
	err := row.Scan(
		&m.CreditID,
		&m.AccountID,
		&m.Amount,
		&m.CreditDate,
		&m.Description,
		&m.IsInitial,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Credit{}, err
	}
	return mapping.ToDomainCredit(m, kind), nil
}

func selectCredit(ctx context.Context, db dbtx, kind domain.CreditKind, creditID string, forUpdate bool) (*domain.Credit, error) {
	table, err := creditTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + creditColumns + ` FROM ` + table + ` WHERE credit_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	credit, err := scanCredit(db.QueryRow(ctx, query, creditID), kind)
	if err != nil {
		return nil, mapPgError(err, "credit "+creditID)
	}
	return &credit, nil
}

// ListCreditsByAccount returns the credits of both tables, newest first.
func (r *PgxCreditRepository) ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT kind, `+creditColumns+` FROM (
			SELECT 'ordinary' AS kind, `+creditColumns+` FROM credit_history WHERE account_id = $1
			UNION ALL
			SELECT 'special' AS kind, `+creditColumns+` FROM special_credit_history WHERE account_id = $1
		) c
		ORDER BY credit_date DESC, created_at DESC, credit_id DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits: %w", err)
	}
	defer rows.Close()

	credits := []domain.Credit{}
	for rows.Next() {
		var (
			kind string
			m    models.Credit
		)
		err := rows.Scan(
			&kind,
			&m.CreditID,
			&m.AccountID,
			&m.Amount,
			&m.CreditDate,
			&m.Description,
			&m.IsInitial,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		credits = append(credits, mapping.ToDomainCredit(m, domain.CreditKind(kind)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit rows: %w", err)
	}
	return credits, nil
}
