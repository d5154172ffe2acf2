package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// reconciliationService recomputes account aggregates from the ledger rows.
// Each account is checked in its own transaction under the account lock, so a run
// never observes a half-applied mutation and never blocks every account at once.
type reconciliationService struct {
	BaseService
	store       portsrepo.LedgerStore
	accountRepo portsrepo.AccountReader
	runs        singleflight.Group
	runTimeout  time.Duration
	// shutdown cancels shared runs that outlive their callers.
	shutdown context.Context
}

const defaultReconcileTimeout = 10 * time.Minute

// ReconciliationOption is a functional option for configuring the reconciliation service
type ReconciliationOption func(*reconciliationService)

// WithReconciliationClock replaces the service clock.
func WithReconciliationClock(now func() time.Time) ReconciliationOption {
	return func(s *reconciliationService) {
		s.Now = now
	}
}

// WithReconciliationTimeout bounds the duration of a single run.
func WithReconciliationTimeout(timeout time.Duration) ReconciliationOption {
	return func(s *reconciliationService) {
		if timeout > 0 {
			s.runTimeout = timeout
		}
	}
}

// WithShutdownContext aborts in-flight runs once ctx is done.
func WithShutdownContext(ctx context.Context) ReconciliationOption {
	return func(s *reconciliationService) {
		s.shutdown = ctx
	}
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(store portsrepo.LedgerStore, accountRepo portsrepo.AccountReader, options ...ReconciliationOption) portssvc.ReconciliationSvc {
	svc := &reconciliationService{
		store:       store,
		accountRepo: accountRepo,
		runTimeout:  defaultReconcileTimeout,
		shutdown:    context.Background(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// ReconcileAll checks every account. Concurrent calls with the same dryRun share one run.
func (s *reconciliationService) ReconcileAll(ctx context.Context, dryRun bool) (*domain.ReconciliationReport, error) {
	key := "all:" + strconv.FormatBool(dryRun)
	ch := s.runs.DoChan(key, func() (interface{}, error) {
		runCtx, cancel := s.detach(ctx)
		defer cancel()
		return s.reconcileAll(runCtx, dryRun)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.LogDebug(ctx, "Joined an in-flight reconciliation run", slog.Bool("dry_run", dryRun))
		}
		return res.Val.(*domain.ReconciliationReport), nil
	}
}

// detach gives a shared run its own deadline. The run survives the caller that
// started it but not the run timeout or service shutdown.
func (s *reconciliationService) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.runTimeout)
	stop := context.AfterFunc(s.shutdown, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (s *reconciliationService) reconcileAll(ctx context.Context, dryRun bool) (*domain.ReconciliationReport, error) {
	ids, err := s.accountRepo.ListAccountIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for reconciliation")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	report := &domain.ReconciliationReport{
		RunAt:    s.now(),
		DryRun:   dryRun,
		Accounts: make([]domain.AccountCorrection, 0, len(ids)),
	}
	for _, id := range ids {
		correction, err := s.reconcileAccount(ctx, id, dryRun)
		if err != nil {
			return nil, err
		}
		report.Accounts = append(report.Accounts, *correction)
		if correction.Corrected {
			report.CorrectedCount++
		}
	}

	s.LogInfo(ctx, "Reconciliation finished",
		slog.Bool("dry_run", dryRun),
		slog.Int("accounts", len(report.Accounts)),
		slog.Int("corrected", report.CorrectedCount))
	return report, nil
}

func (s *reconciliationService) ReconcileAccount(ctx context.Context, accountID string, dryRun bool) (*domain.AccountCorrection, error) {
	return s.reconcileAccount(ctx, accountID, dryRun)
}

func (s *reconciliationService) reconcileAccount(ctx context.Context, accountID string, dryRun bool) (*domain.AccountCorrection, error) {
	var correction domain.AccountCorrection
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		real, err := tx.SumLedger(ctx, accountID)
		if err != nil {
			return err
		}
		correction = domain.NewAccountCorrection(*acc, real)
		if !correction.Corrected || dryRun {
			return nil
		}
		return tx.OverwriteAggregate(ctx, accountID, real, s.now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("reconcile account %s: %w", accountID, err)
	}

	if correction.Corrected {
		s.LogWarn(ctx, "Account aggregate diverged from ledger",
			slog.String("account_id", correction.AccountID),
			slog.String("account_name", correction.AccountName),
			slog.Int64("old_total_spent", correction.OldTotalSpent),
			slog.Int64("new_total_spent", correction.NewTotalSpent),
			slog.Int64("old_total_credited", correction.OldTotalCredited),
			slog.Int64("new_total_credited", correction.NewTotalCredited),
			slog.Int64("old_balance", correction.OldBalance),
			slog.Int64("new_balance", correction.NewBalance),
			slog.Bool("dry_run", dryRun))
	}
	return &correction, nil
}
