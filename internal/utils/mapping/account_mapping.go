package mapping

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		AccountName:    d.AccountName,
		AccountType:    models.AccountType(d.AccountType),
		OwnerUserID:    nullableString(d.OwnerUserID),
		CurrentBalance: d.CurrentBalance,
		TotalCredited:  d.TotalCredited,
		TotalSpent:     d.TotalSpent,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		AccountType:    domain.AccountType(m.AccountType),
		OwnerUserID:    stringOrEmpty(m.OwnerUserID),
		CurrentBalance: m.CurrentBalance,
		TotalCredited:  m.TotalCredited,
		TotalSpent:     m.TotalSpent,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
