package models

// AccountType is the stored account type label.
type AccountType string

// Account represents a row of the accounts table.
// The three aggregate columns are constrained by current_balance = total_credited - total_spent.
type Account struct {
	AccountID      string      `db:"account_id"`
	AccountName    string      `db:"account_name"`
	AccountType    AccountType `db:"account_type"`
	OwnerUserID    *string     `db:"owner_user_id"` // Nullable
	CurrentBalance int64       `db:"current_balance"`
	TotalCredited  int64       `db:"total_credited"`
	TotalSpent     int64       `db:"total_spent"`
	IsActive       bool        `db:"is_active"`
	AuditFields
}
