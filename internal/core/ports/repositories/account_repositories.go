package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by name.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// ListAccountIDs returns every account id, active or not.
	ListAccountIDs(ctx context.Context) ([]string, error)
}

// AccountWriter defines write operations on the descriptive account fields.
// Aggregate columns are never written here.
type AccountWriter interface {
	// UpdateAccountDetails updates name, type, owner and active flag.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
