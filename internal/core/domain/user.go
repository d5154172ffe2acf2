package domain

import "time"

// Role is the authorization level of a user.
type Role string

const (
	RoleDirecteur        Role = "directeur" // Ordinary submitter
	RoleDirecteurGeneral Role = "directeur_general"
	RolePCA              Role = "pca"
	RoleAdmin            Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleDirecteur, RoleDirecteurGeneral, RolePCA, RoleAdmin:
		return true
	}
	return false
}

// IsElevated reports whether the role may act on any ledger entry at any time.
func (r Role) IsElevated() bool {
	return r == RoleDirecteurGeneral || r == RolePCA || r == RoleAdmin
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
