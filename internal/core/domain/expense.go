package domain

import "time"

// Expense is a debit entry against an account. Total is the single authoritative amount.
type Expense struct {
	ExpenseID          string    `json:"expenseID"`
	AccountID          string    `json:"accountID"`
	Total              int64     `json:"total"`
	ExpenseDate        time.Time `json:"expenseDate"`
	Designation        string    `json:"designation"`
	Supplier           string    `json:"supplier"`
	Category           string    `json:"category"`
	Subcategory        string    `json:"subcategory"`
	ExpenseType        string    `json:"expenseType"`
	Description        string    `json:"description"`
	Quantity           *int64    `json:"quantity,omitempty"`
	UnitPrice          *int64    `json:"unitPrice,omitempty"`
	JustificationPath  string    `json:"justificationPath"`
	SelectedForInvoice bool      `json:"selectedForInvoice"`
	AuditFields
}

// ExpenseExportRow is an expense together with the name of its account.
type ExpenseExportRow struct {
	Expense
	AccountName string
}

// ExpenseFilter narrows expense listings and exports.
type ExpenseFilter struct {
	AccountID          string
	AccountIDs         []string // Visibility restriction; nil means unrestricted
	CreatedBy          string
	Category           string
	From               *time.Time
	To                 *time.Time
	SelectedForInvoice *bool
}
