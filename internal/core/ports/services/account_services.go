package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account visible to the actor.
	GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error)

	// ListAccounts lists the accounts visible to the actor.
	ListAccounts(ctx context.Context, actor domain.Actor, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens an account, recording a non-zero initial amount as an initial credit.
	CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates the descriptive fields of an account.
	UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error

	// DeleteAccount removes an account that never recorded spending, with its credits.
	DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
