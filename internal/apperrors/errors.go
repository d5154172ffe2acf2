package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the actor is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientBalance indicates a debit larger than the account's current balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrBudgetExceeded indicates a debit that would push total spent above total credited.
var ErrBudgetExceeded = errors.New("budget exceeded")

// AppError wraps infrastructure failures with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// InsufficientBalanceError carries the figures of a rejected debit.
type InsufficientBalanceError struct {
	AccountID string
	Available int64
	Requested int64
}

// Shortfall is the amount missing to accept the debit.
func (e *InsufficientBalanceError) Shortfall() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: available %d, requested %d, shortfall %d",
		e.AccountID, e.Available, e.Requested, e.Shortfall())
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// BudgetExceededError carries the figures of a debit rejected by the credit cap.
type BudgetExceededError struct {
	AccountID string
	Budget    int64
	Used      int64
	Requested int64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded on account %s: budget %d, used %d, requested %d",
		e.AccountID, e.Budget, e.Used, e.Requested)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// ForbiddenError describes why an action was refused.
// Remaining is the time left in the edit window, zero when the window does not apply or has elapsed.
type ForbiddenError struct {
	Reason    string
	Remaining time.Duration
	Expired   bool
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// NewForbidden returns a ForbiddenError without window detail.
func NewForbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}
