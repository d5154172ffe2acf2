package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	ctx     context.Context
	timeout time.Duration
}

// New creates a new scheduler. Jobs receive a context derived from ctx, bounded by timeout when positive.
func New(ctx context.Context, log *slog.Logger, timeout time.Duration) *Scheduler {
	log = log.With(slog.String("component", "scheduler"))
	adapter := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		log:     log,
		ctx:     ctx,
		timeout: timeout,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}

// AddJob registers a new job with cron schedule
// Schedule examples:
//   - "0 */5 * * * *"      - Every 5 minutes
//   - "@every 6h"          - Every six hours
//   - "0 2 * * *"          - 2 AM daily
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.log.Error("Job failed", slog.String("job", job.Name()), slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}

	s.log.Info("Job registered", slog.String("schedule", schedule), slog.String("job", job.Name()))
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.log.Debug("Running job", slog.String("job", job.Name()))
	if err := job.Run(ctx); err != nil {
		return err
	}
	s.log.Debug("Job completed", slog.String("job", job.Name()), slog.Duration("took", time.Since(start)))
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
