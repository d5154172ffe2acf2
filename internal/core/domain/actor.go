package domain

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
)

// DefaultEditWindow is how long an ordinary submitter may edit or delete their own entries.
const DefaultEditWindow = 48 * time.Hour

// Actor is the authenticated identity performing a ledger operation.
type Actor struct {
	UserID string
	Role   Role
}

// CanModifyEntry checks edit/delete rights on an entry created by createdBy at createdAt.
// Elevated roles may modify any entry at any time; everyone else only their own entries
// while now is within window of createdAt.
func (a Actor) CanModifyEntry(createdBy string, createdAt, now time.Time, window time.Duration) error {
	if a.Role.IsElevated() {
		return nil
	}
	if a.UserID == "" || a.UserID != createdBy {
		return apperrors.NewForbidden("only the creator or an elevated role may modify this entry")
	}
	deadline := createdAt.Add(window)
	if now.After(deadline) {
		return &apperrors.ForbiddenError{Reason: "edit window has elapsed", Expired: true}
	}
	return nil
}

// RemainingWindow is the time left for the creator to modify an entry, zero once elapsed.
func RemainingWindow(createdAt, now time.Time, window time.Duration) time.Duration {
	remaining := createdAt.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanSpendOn checks whether the actor may record expenses against acc.
func (a Actor) CanSpendOn(acc Account) error {
	if a.Role.IsElevated() {
		return nil
	}
	if acc.OwnerUserID != "" && acc.OwnerUserID == a.UserID {
		return nil
	}
	return apperrors.NewForbidden("account is not assigned to this user")
}

// CanView reports whether the actor may see acc and its entries.
func (a Actor) CanView(acc Account) bool {
	return a.Role.IsElevated() || (acc.OwnerUserID != "" && acc.OwnerUserID == a.UserID)
}

// RequireElevated fails with a forbidden error unless the actor holds an elevated role.
func (a Actor) RequireElevated(action string) error {
	if a.Role.IsElevated() {
		return nil
	}
	return apperrors.NewForbidden(action + " requires an elevated role")
}
