package models

import (
	"time"
)

// User represents a row of the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	FullName     string  `db:"full_name"`
	Email        *string `db:"email"` // Nullable, unique when set
	Role         string  `db:"role"`
	IsActive     bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
