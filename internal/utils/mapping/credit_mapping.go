package mapping

import (
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/models"
)

// ToModelCredit converts a domain Credit to a model Credit
func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:    d.CreditID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		CreditDate:  d.CreditDate,
		Description: d.Description,
		IsInitial:   d.IsInitial,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCredit converts a model Credit read from the table of kind to a domain Credit
func ToDomainCredit(m models.Credit, kind domain.CreditKind) domain.Credit {
	return domain.Credit{
		CreditID:    m.CreditID,
		AccountID:   m.AccountID,
		Kind:        kind,
		Amount:      m.Amount,
		CreditDate:  m.CreditDate,
		Description: m.Description,
		IsInitial:   m.IsInitial,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
