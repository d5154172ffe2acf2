package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CreditReader defines read operations for credit data
type CreditReader interface {
	// ListCreditsByAccount returns the credits of both kinds, newest first.
	ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error)
}
