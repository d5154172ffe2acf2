package domain

import (
	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
)

// AccountType classifies a budget envelope.
type AccountType string

const (
	Classique   AccountType = "classique"
	Creance     AccountType = "creance"
	Fournisseur AccountType = "fournisseur"
	Partenaire  AccountType = "partenaire"
	Statut      AccountType = "statut"
	Adjustment  AccountType = "adjustment"
	Depot       AccountType = "depot"
)

// AccountTypes lists every supported account type, in display order.
var AccountTypes = []AccountType{Classique, Creance, Fournisseur, Partenaire, Statut, Adjustment, Depot}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is a budget envelope credited by elevated roles and debited through expenses.
// CurrentBalance, TotalCredited and TotalSpent form the aggregate: derived state that
// only the ledger service and the reconciliation job may write.
type Account struct {
	AccountID      string      `json:"accountID"`
	AccountName    string      `json:"accountName"`
	AccountType    AccountType `json:"accountType"`
	OwnerUserID    string      `json:"ownerUserID"` // Director the envelope is assigned to; empty if none
	CurrentBalance int64       `json:"currentBalance"`
	TotalCredited  int64       `json:"totalCredited"`
	TotalSpent     int64       `json:"totalSpent"`
	IsActive       bool        `json:"isActive"`
	AuditFields
}

// Totals returns the stored aggregate as ledger totals.
func (a Account) Totals() LedgerTotals {
	return LedgerTotals{TotalCredited: a.TotalCredited, TotalSpent: a.TotalSpent}
}

// IsCapped reports whether spending is limited by the credited total.
func (a Account) IsCapped() bool {
	return a.TotalCredited > 0
}

// IsConsistent reports whether the cached balance agrees with the cached totals.
func (a Account) IsConsistent() bool {
	return a.CurrentBalance == a.TotalCredited-a.TotalSpent
}

// CheckDebit validates an additional debit of amount against the aggregate.
// The balance check runs first; the budget check only applies to capped accounts.
func (a Account) CheckDebit(amount int64) error {
	if amount <= 0 {
		return nil
	}
	if amount > a.CurrentBalance {
		return &apperrors.InsufficientBalanceError{
			AccountID: a.AccountID,
			Available: a.CurrentBalance,
			Requested: amount,
		}
	}
	if a.IsCapped() && a.TotalSpent+amount > a.TotalCredited {
		return &apperrors.BudgetExceededError{
			AccountID: a.AccountID,
			Budget:    a.TotalCredited,
			Used:      a.TotalSpent,
			Requested: amount,
		}
	}
	return nil
}

// Apply adds delta to the cached aggregate.
func (a *Account) Apply(delta AggregateDelta) {
	a.CurrentBalance += delta.Balance
	a.TotalCredited += delta.Credited
	a.TotalSpent += delta.Spent
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	OwnerUserID     string      // Restrict to accounts assigned to this user
	AccountType     AccountType // Optional type filter
	IncludeInactive bool
	Limit           int
	Offset          int
}
