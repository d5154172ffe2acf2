package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	store       portsrepo.LedgerStore
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	enforcer    consistencyEnforcer
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithUserReader enables owner validation against the user store.
func WithUserReader(repo portsrepo.UserReader) AccountServiceOption {
	return func(s *accountService) {
		s.userRepo = repo
	}
}

// WithAccountClock replaces the service clock.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.Now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(store portsrepo.LedgerStore, repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		store:       store,
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := actor.RequireElevated("opening an account"); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if err := accounting.ValidateInitialAmount(req.AccountType, req.InitialAmount); err != nil {
		return nil, err
	}
	owner := ""
	if req.OwnerUserID != nil {
		owner = *req.OwnerUserID
	}
	if err := s.validateOwner(ctx, owner); err != nil {
		return nil, err
	}

	now := s.now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		AccountName: req.AccountName,
		AccountType: req.AccountType,
		OwnerUserID: owner,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertAccount(ctx, account); err != nil {
			return err
		}
		if req.InitialAmount == 0 {
			return nil
		}
		initial := domain.Credit{
			CreditID:    uuid.NewString(),
			AccountID:   account.AccountID,
			Kind:        domain.OrdinaryCredit,
			Amount:      req.InitialAmount,
			CreditDate:  now,
			Description: "Initial amount",
			IsInitial:   true,
			AuditFields: account.AuditFields,
		}
		if err := tx.InsertCredit(ctx, initial); err != nil {
			return err
		}
		return s.enforcer.CreditInserted(ctx, tx, &account, initial.Amount, actor.UserID, now)
	})
	if err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to create account", slog.String("account_name", req.AccountName))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)),
		slog.Int64("initial_amount", req.InitialAmount))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !actor.CanView(*account) {
		return nil, apperrors.NewForbidden("account is not assigned to this user")
	}
	s.LogDebug(ctx, "Account retrieved", slog.String("account_id", accountID))
	return account, nil
}

// ListAccounts restricts directors to their own accounts.
func (s *accountService) ListAccounts(ctx context.Context, actor domain.Actor, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{
		AccountType:     domain.AccountType(params.AccountType),
		IncludeInactive: params.IncludeInactive,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if !actor.Role.IsElevated() {
		filter.OwnerUserID = actor.UserID
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := actor.RequireElevated("updating an account"); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountName != nil {
		if *req.AccountName == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.AccountName = *req.AccountName
	}
	if req.AccountType != nil {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.OwnerUserID != nil {
		if err := s.validateOwner(ctx, *req.OwnerUserID); err != nil {
			return nil, err
		}
		account.OwnerUserID = *req.OwnerUserID
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.Touch(actor.UserID, s.now())

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	if err := actor.RequireElevated("deactivating an account"); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actor.UserID, s.now()); err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount is only allowed while nothing has been spent on the account.
func (s *accountService) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	if err := actor.RequireElevated("deleting an account"); err != nil {
		return err
	}
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if acc.TotalSpent != 0 {
			return fmt.Errorf("%w: account %s has recorded expenses and can only be deactivated", apperrors.ErrConflict, accountID)
		}
		return tx.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) validateOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" || s.userRepo == nil {
		return nil
	}
	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: owner user %s does not exist", apperrors.ErrValidation, ownerID)
		}
		return err
	}
	if !owner.IsActive {
		return fmt.Errorf("%w: owner user %s is inactive", apperrors.ErrValidation, ownerID)
	}
	return nil
}
