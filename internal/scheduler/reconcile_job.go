package scheduler

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

// ReconcileJob runs a full, writing reconciliation of every account.
type ReconcileJob struct {
	service portssvc.ReconciliationSvc
	log     *slog.Logger
}

// NewReconcileJob creates the scheduled reconciliation job.
func NewReconcileJob(service portssvc.ReconciliationSvc, log *slog.Logger) *ReconcileJob {
	return &ReconcileJob{service: service, log: log}
}

func (j *ReconcileJob) Name() string {
	return "reconcile_accounts"
}

func (j *ReconcileJob) Run(ctx context.Context) error {
	report, err := j.service.ReconcileAll(ctx, false)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if report.CorrectedCount > 0 {
		level = slog.LevelWarn
	}
	j.log.Log(ctx, level, "Scheduled reconciliation finished",
		slog.Int("accounts", len(report.Accounts)),
		slog.Int("corrected", report.CorrectedCount))
	return nil
}
