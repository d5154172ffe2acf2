package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ReconcileAll(ctx context.Context, dryRun bool) (*domain.ReconciliationReport, error) {
	args := m.Called(ctx, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationReport), args.Error(1)
}

func (m *MockReconciliationService) ReconcileAccount(ctx context.Context, accountID string, dryRun bool) (*domain.AccountCorrection, error) {
	args := m.Called(ctx, accountID, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountCorrection), args.Error(1)
}

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(context.Background(), discard, 0)
	assert.Error(t, s.AddJob("every now and then", &countingJob{}))
	assert.NoError(t, s.AddJob("@every 6h", &countingJob{}))
	assert.NoError(t, s.AddJob("0 */5 * * * *", &countingJob{}))
}

func TestScheduledJobRuns(t *testing.T) {
	s := New(context.Background(), discard, time.Second)
	job := &countingJob{}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestRunNowReturnsJobError(t *testing.T) {
	s := New(context.Background(), discard, 0)
	boom := errors.New("boom")
	assert.ErrorIs(t, s.RunNow(&countingJob{err: boom}), boom)
}

func TestReconcileJobWritesCorrections(t *testing.T) {
	svc := new(MockReconciliationService)
	svc.On("ReconcileAll", mock.Anything, false).
		Return(&domain.ReconciliationReport{CorrectedCount: 1, Accounts: []domain.AccountCorrection{{AccountID: "acc-1", Corrected: true}}}, nil).Once()

	s := New(context.Background(), discard, time.Minute)
	require.NoError(t, s.RunNow(NewReconcileJob(svc, discard)))
	svc.AssertExpectations(t)
}

func TestReconcileJobPropagatesFailure(t *testing.T) {
	svc := new(MockReconciliationService)
	svc.On("ReconcileAll", mock.Anything, false).Return(nil, context.DeadlineExceeded).Once()

	job := NewReconcileJob(svc, discard)
	assert.ErrorIs(t, job.Run(context.Background()), context.DeadlineExceeded)
	assert.Equal(t, "reconcile_accounts", job.Name())
}
