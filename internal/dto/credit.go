package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CreateCreditRequest defines the data needed to credit an account.
type CreateCreditRequest struct {
	Kind        domain.CreditKind `json:"kind" binding:"omitempty,credit_kind"` // Defaults to ordinary
	Amount      int64             `json:"amount" binding:"required,gt=0"`
	CreditDate  *time.Time        `json:"creditDate"`
	Description string            `json:"description" binding:"max=1000"`
}

// CreditResponse defines the data returned for a credit entry.
type CreditResponse struct {
	CreditID    string            `json:"creditID"`
	AccountID   string            `json:"accountID"`
	Kind        domain.CreditKind `json:"kind"`
	Amount      int64             `json:"amount"`
	CreditDate  time.Time         `json:"creditDate"`
	Description string            `json:"description"`
	IsInitial   bool              `json:"isInitial"`
	CreatedAt   time.Time         `json:"createdAt"`
	CreatedBy   string            `json:"createdBy"`
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:    c.CreditID,
		AccountID:   c.AccountID,
		Kind:        c.Kind,
		Amount:      c.Amount,
		CreditDate:  c.CreditDate,
		Description: c.Description,
		IsInitial:   c.IsInitial,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
	}
}

// ListCreditsResponse wraps the credits of an account.
type ListCreditsResponse struct {
	Credits []CreditResponse `json:"credits"`
}

// ToListCreditsResponse converts a slice of domain.Credit to ListCreditsResponse DTO
func ToListCreditsResponse(credits []domain.Credit) ListCreditsResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i])
	}
	return ListCreditsResponse{Credits: res}
}
