package models

import "time"

// Credit represents a row of credit_history or special_credit_history.
// Both tables share this layout; the table a row came from is not a column.
type Credit struct {
	CreditID    string    `db:"credit_id"`
	AccountID   string    `db:"account_id"`
	Amount      int64     `db:"amount"`
	CreditDate  time.Time `db:"credit_date"`
	Description string    `db:"description"`
	IsInitial   bool      `db:"is_initial"`
	AuditFields
}
