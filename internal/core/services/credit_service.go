package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/google/uuid"
)

// creditService implements the CreditSvcFacade interface
type creditService struct {
	BaseService
	store       portsrepo.LedgerStore
	creditRepo  portsrepo.CreditReader
	accountRepo portsrepo.AccountReader
	enforcer    consistencyEnforcer
	editWindow  time.Duration
}

// CreditServiceOption is a functional option for configuring the credit service
type CreditServiceOption func(*creditService)

// WithCreditEditWindow sets how long the creator of a credit may delete it.
func WithCreditEditWindow(window time.Duration) CreditServiceOption {
	return func(s *creditService) {
		if window > 0 {
			s.editWindow = window
		}
	}
}

// WithCreditClock replaces the service clock.
func WithCreditClock(now func() time.Time) CreditServiceOption {
	return func(s *creditService) {
		s.Now = now
	}
}

// NewCreditService creates a new credit service with the provided options
func NewCreditService(store portsrepo.LedgerStore, creditRepo portsrepo.CreditReader, accountRepo portsrepo.AccountReader, options ...CreditServiceOption) portssvc.CreditSvcFacade {
	svc := &creditService{
		store:       store,
		creditRepo:  creditRepo,
		accountRepo: accountRepo,
		editWindow:  domain.DefaultEditWindow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) RecordCredit(ctx context.Context, actor domain.Actor, accountID string, req dto.CreateCreditRequest) (*domain.Credit, error) {
	if err := actor.RequireElevated("crediting an account"); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}
	kind := req.Kind
	if kind == "" {
		kind = domain.OrdinaryCredit
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown credit kind %q", apperrors.ErrValidation, kind)
	}

	now := s.now()
	creditDate := now
	if req.CreditDate != nil {
		creditDate = req.CreditDate.UTC()
	}
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		AccountID:   accountID,
		Kind:        kind,
		Amount:      req.Amount,
		CreditDate:  creditDate,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := lockActiveAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := tx.InsertCredit(ctx, credit); err != nil {
			return err
		}
		return s.enforcer.CreditInserted(ctx, tx, acc, credit.Amount, actor.UserID, now)
	})
	if err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to record credit", slog.String("account_id", accountID), slog.Int64("amount", req.Amount))
		return nil, err
	}

	s.LogInfo(ctx, "Credit recorded",
		slog.String("credit_id", credit.CreditID),
		slog.String("account_id", accountID),
		slog.String("kind", string(kind)),
		slog.Int64("amount", credit.Amount))
	return &credit, nil
}

func (s *creditService) DeleteCredit(ctx context.Context, actor domain.Actor, kind domain.CreditKind, creditID string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown credit kind %q", apperrors.ErrValidation, kind)
	}
	now := s.now()

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		peek, err := tx.FindCredit(ctx, kind, creditID)
		if err != nil {
			return err
		}
		acc, err := lockActiveAccount(ctx, tx, peek.AccountID)
		if err != nil {
			return err
		}
		credit, err := tx.FindCreditForUpdate(ctx, kind, creditID)
		if err != nil {
			return err
		}
		if err := actor.CanModifyEntry(credit.CreatedBy, credit.CreatedAt, now, s.editWindow); err != nil {
			return err
		}
		if err := s.enforcer.CreditDeleted(ctx, tx, acc, credit.Amount, actor.UserID, now); err != nil {
			return err
		}
		return tx.DeleteCredit(ctx, kind, creditID)
	})
	if err != nil {
		logLedgerError(ctx, &s.BaseService, err, "Failed to delete credit", slog.String("credit_id", creditID))
		return err
	}

	s.LogInfo(ctx, "Credit deleted", slog.String("credit_id", creditID), slog.String("kind", string(kind)))
	return nil
}

func (s *creditService) ListCredits(ctx context.Context, actor domain.Actor, accountID string) ([]domain.Credit, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !actor.CanView(*acc) {
		return nil, apperrors.NewForbidden("account is not assigned to this user")
	}
	credits, err := s.creditRepo.ListCreditsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", slog.String("account_id", accountID))
		return nil, err
	}
	if credits == nil {
		return []domain.Credit{}, nil
	}
	return credits, nil
}
