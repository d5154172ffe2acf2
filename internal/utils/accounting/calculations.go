package accounting

import (
	"fmt"
	"math"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// ResolveExpenseTotal returns the authoritative expense amount.
// An explicit total wins; otherwise quantity × unit price is used when both are present.
func ResolveExpenseTotal(total, quantity, unitPrice *int64) (int64, error) {
	if total != nil {
		if *total <= 0 {
			return 0, fmt.Errorf("%w: total must be positive", apperrors.ErrValidation)
		}
		return *total, nil
	}
	if quantity == nil || unitPrice == nil {
		return 0, fmt.Errorf("%w: total or quantity and unit price are required", apperrors.ErrValidation)
	}
	q, p := *quantity, *unitPrice
	if q <= 0 || p <= 0 {
		return 0, fmt.Errorf("%w: quantity and unit price must be positive", apperrors.ErrValidation)
	}
	if q > math.MaxInt64/p {
		return 0, fmt.Errorf("%w: quantity × unit price overflows", apperrors.ErrValidation)
	}
	return q * p, nil
}

// ValidateInitialAmount checks the starting amount of a new account.
// Only adjustment accounts may open with a negative amount.
func ValidateInitialAmount(accountType domain.AccountType, amount int64) error {
	if amount < 0 && accountType != domain.Adjustment {
		return fmt.Errorf("%w: initial amount must not be negative for %s accounts", apperrors.ErrValidation, accountType)
	}
	return nil
}

// SumTotals adds up expense and credit amounts the way reconciliation recomputes an aggregate.
func SumTotals(expenses []domain.Expense, credits []domain.Credit) domain.LedgerTotals {
	var totals domain.LedgerTotals
	for _, e := range expenses {
		totals.TotalSpent += e.Total
	}
	for _, c := range credits {
		totals.TotalCredited += c.Amount
	}
	return totals
}
