package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

// consistencyEnforcer keeps an account aggregate equal to the sum of its ledger rows.
// Every method runs inside the caller's ledger transaction on an account that the caller
// has already locked, and updates acc in place once the write succeeded.
type consistencyEnforcer struct{}

// ExpenseInserted checks and applies a new debit of amount.
func (consistencyEnforcer) ExpenseInserted(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, amount int64, userID string, now time.Time) error {
	if err := acc.CheckDebit(amount); err != nil {
		return err
	}
	return applyDelta(ctx, tx, acc, domain.ExpenseInserted(amount), userID, now)
}

// ExpenseAmountChanged checks an increase against the aggregate and applies the difference.
func (consistencyEnforcer) ExpenseAmountChanged(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, oldAmount, newAmount int64, userID string, now time.Time) error {
	if err := acc.CheckDebit(newAmount - oldAmount); err != nil {
		return err
	}
	return applyDelta(ctx, tx, acc, domain.ExpenseAmountChanged(oldAmount, newAmount), userID, now)
}

// ExpenseDeleted gives the amount of a removed expense back to the account.
func (consistencyEnforcer) ExpenseDeleted(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, amount int64, userID string, now time.Time) error {
	return applyDelta(ctx, tx, acc, domain.ExpenseDeleted(amount), userID, now)
}

// CreditInserted applies a new credit. Credits have no upper bound.
func (consistencyEnforcer) CreditInserted(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, amount int64, userID string, now time.Time) error {
	return applyDelta(ctx, tx, acc, domain.CreditInserted(amount), userID, now)
}

// CreditDeleted withdraws a credit, refusing when the money has already been spent.
func (consistencyEnforcer) CreditDeleted(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, amount int64, userID string, now time.Time) error {
	if amount > acc.CurrentBalance {
		return &apperrors.InsufficientBalanceError{
			AccountID: acc.AccountID,
			Available: acc.CurrentBalance,
			Requested: amount,
		}
	}
	return applyDelta(ctx, tx, acc, domain.CreditDeleted(amount), userID, now)
}

func applyDelta(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, delta domain.AggregateDelta, userID string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}
	if err := tx.ApplyAggregateDelta(ctx, acc.AccountID, delta, userID, now); err != nil {
		return fmt.Errorf("failed to update aggregate of account %s: %w", acc.AccountID, err)
	}
	acc.Apply(delta)
	acc.Touch(userID, now)
	return nil
}

// lockActiveAccount locks the account row and refuses inactive accounts.
func lockActiveAccount(ctx context.Context, tx portsrepo.LedgerTx, accountID string) (*domain.Account, error) {
	acc, err := tx.LockAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrNotFound, accountID)
	}
	return acc, nil
}
