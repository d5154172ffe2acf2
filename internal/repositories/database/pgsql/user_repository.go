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

const userColumns = `user_id, username, password_hash, full_name, email, role, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.FullName,
		&m.Email,
		&m.Role,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return mapping.ToDomainUser(m), nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user, err := scanUser(r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` AND deleted_at IS NULL`, arg))
	if err != nil {
		return nil, mapPgError(err, "user")
	}
	return &user, nil
}

// SaveUser persists a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.UserID, m.Username, m.PasswordHash, m.FullName, m.Email, m.Role, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	return mapPgError(err, "user "+user.Username)
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

// FindUserByUsername retrieves a user by their login name.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `username = $1`, username)
}

// FindUserByEmail retrieves a user by email, case-insensitively.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `lower(email) = lower($1)`, email)
}

// FindUsers retrieves a paginated list of users.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE deleted_at IS NULL
		ORDER BY username
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser updates an existing user's details.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET full_name = $2, email = $3, role = $4, is_active = $5, password_hash = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1 AND deleted_at IS NULL`,
		m.UserID, m.FullName, m.Email, m.Role, m.IsActive, m.PasswordHash, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "user "+user.UserID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.UserID)
	}
	return nil
}
