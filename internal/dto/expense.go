package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record an expense.
// Total may be omitted when both Quantity and UnitPrice are given.
type CreateExpenseRequest struct {
	AccountID   string     `json:"accountID" binding:"required"`
	Total       *int64     `json:"total" binding:"omitempty,gt=0"`
	Quantity    *int64     `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice   *int64     `json:"unitPrice" binding:"omitempty,gt=0"`
	ExpenseDate *time.Time `json:"expenseDate"`
	Designation string     `json:"designation" binding:"required,max=255"`
	Supplier    string     `json:"supplier" binding:"max=255"`
	Category    string     `json:"category" binding:"max=100"`
	Subcategory string     `json:"subcategory" binding:"max=100"`
	ExpenseType string     `json:"expenseType" binding:"max=100"`
	Description string     `json:"description" binding:"max=2000"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// The account of an expense cannot be changed.
type UpdateExpenseRequest struct {
	Total       *int64     `json:"total" binding:"omitempty,gt=0"`
	Quantity    *int64     `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice   *int64     `json:"unitPrice" binding:"omitempty,gt=0"`
	ExpenseDate *time.Time `json:"expenseDate"`
	Designation *string    `json:"designation" binding:"omitempty,min=1,max=255"`
	Supplier    *string    `json:"supplier" binding:"omitempty,max=255"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Subcategory *string    `json:"subcategory" binding:"omitempty,max=100"`
	ExpenseType *string    `json:"expenseType" binding:"omitempty,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID          string    `json:"expenseID"`
	AccountID          string    `json:"accountID"`
	Total              int64     `json:"total"`
	Quantity           *int64    `json:"quantity,omitempty"`
	UnitPrice          *int64    `json:"unitPrice,omitempty"`
	ExpenseDate        time.Time `json:"expenseDate"`
	Designation        string    `json:"designation"`
	Supplier           string    `json:"supplier"`
	Category           string    `json:"category"`
	Subcategory        string    `json:"subcategory"`
	ExpenseType        string    `json:"expenseType"`
	Description        string    `json:"description"`
	JustificationPath  string    `json:"justificationPath,omitempty"`
	SelectedForInvoice bool      `json:"selectedForInvoice"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy      string    `json:"lastUpdatedBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		AccountID:          e.AccountID,
		Total:              e.Total,
		Quantity:           e.Quantity,
		UnitPrice:          e.UnitPrice,
		ExpenseDate:        e.ExpenseDate,
		Designation:        e.Designation,
		Supplier:           e.Supplier,
		Category:           e.Category,
		Subcategory:        e.Subcategory,
		ExpenseType:        e.ExpenseType,
		Description:        e.Description,
		JustificationPath:  e.JustificationPath,
		SelectedForInvoice: e.SelectedForInvoice,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
		LastUpdatedAt:      e.LastUpdatedAt,
		LastUpdatedBy:      e.LastUpdatedBy,
	}
}

// ListExpensesParams defines query parameters for listing and exporting expenses.
type ListExpensesParams struct {
	AccountID          string     `form:"account_id"`
	CreatedBy          string     `form:"created_by"`
	Category           string     `form:"category"`
	From               *time.Time `form:"from" time_format:"2006-01-02"`
	To                 *time.Time `form:"to" time_format:"2006-01-02"`
	SelectedForInvoice *bool      `form:"selected_for_invoice"`
	Limit              int        `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken          *string    `form:"nextToken"`
}

// ToExpenseFilter converts the query parameters into a domain filter.
func (p ListExpensesParams) ToExpenseFilter() domain.ExpenseFilter {
	return domain.ExpenseFilter{
		AccountID:          p.AccountID,
		CreatedBy:          p.CreatedBy,
		Category:           p.Category,
		From:               p.From,
		To:                 p.To,
		SelectedForInvoice: p.SelectedForInvoice,
	}
}

// ListExpensesResponse wraps one page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a page of domain.Expense to ListExpensesResponse DTO
func ToListExpensesResponse(expenses []domain.Expense, nextToken *string) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res, NextToken: nextToken}
}

// InvoiceSelectionRequest toggles the invoice selection flag of several expenses.
type InvoiceSelectionRequest struct {
	ExpenseIDs []string `json:"expenseIDs" binding:"required,min=1,max=500,dive,required"`
	Selected   bool     `json:"selected"`
}

// InvoiceSelectionResponse reports how many expenses changed.
type InvoiceSelectionResponse struct {
	Updated int64 `json:"updated"`
}
