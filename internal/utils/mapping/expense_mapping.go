package mapping

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:          d.ExpenseID,
		AccountID:          d.AccountID,
		Total:              d.Total,
		ExpenseDate:        d.ExpenseDate,
		Designation:        d.Designation,
		Supplier:           d.Supplier,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		ExpenseType:        d.ExpenseType,
		Description:        d.Description,
		Quantity:           d.Quantity,
		UnitPrice:          d.UnitPrice,
		JustificationPath:  nullableString(d.JustificationPath),
		SelectedForInvoice: d.SelectedForInvoice,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:          m.ExpenseID,
		AccountID:          m.AccountID,
		Total:              m.Total,
		ExpenseDate:        m.ExpenseDate,
		Designation:        m.Designation,
		Supplier:           m.Supplier,
		Category:           m.Category,
		Subcategory:        m.Subcategory,
		ExpenseType:        m.ExpenseType,
		Description:        m.Description,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		JustificationPath:  stringOrEmpty(m.JustificationPath),
		SelectedForInvoice: m.SelectedForInvoice,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
