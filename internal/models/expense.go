package models

import "time"

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID          string    `db:"expense_id"`
	AccountID          string    `db:"account_id"`
	Total              int64     `db:"total"`
	ExpenseDate        time.Time `db:"expense_date"`
	Designation        string    `db:"designation"`
	Supplier           string    `db:"supplier"`
	Category           string    `db:"category"`
	Subcategory        string    `db:"subcategory"`
	ExpenseType        string    `db:"expense_type"`
	Description        string    `db:"description"`
	Quantity           *int64    `db:"quantity"`
	UnitPrice          *int64    `db:"unit_price"`
	JustificationPath  *string   `db:"justification_path"`
	SelectedForInvoice bool      `db:"selected_for_invoice"`
	AuditFields
}
