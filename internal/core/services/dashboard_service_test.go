package services_test

import (
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	f := newLedgerFixture(t)
	a := f.openAccount("A", domain.Classique, 200_000)
	b := f.openAccount("B", domain.Classique, 100_000)
	c := f.openAccount("C", domain.Depot, 0)
	_, err := f.spend(dirActor, a.AccountID, 50_000)
	require.NoError(t, err)
	_, err = f.spend(dirActor, b.AccountID, 33_333)
	require.NoError(t, err)
	closed := f.openAccount("Fermé", domain.Statut, 1_000)
	require.NoError(t, f.accounts.DeactivateAccount(f.ctx, adminActor, closed.AccountID))

	summary, err := f.dashboard.Summary(f.ctx, adminActor)
	require.NoError(t, err)

	assert.Equal(t, int64(300_000), summary.TotalCredited)
	assert.Equal(t, int64(83_333), summary.TotalSpent)
	assert.Equal(t, int64(216_667), summary.CurrentBalance)
	require.Len(t, summary.ByType, 2)
	assert.Equal(t, domain.Classique, summary.ByType[0].AccountType)
	assert.Equal(t, 2, summary.ByType[0].AccountCount)
	assert.Equal(t, domain.Depot, summary.ByType[1].AccountType)

	percents := map[string]decimal.Decimal{}
	for _, u := range summary.Accounts {
		percents[u.AccountID] = u.UsedPercent
	}
	assert.True(t, decimal.NewFromInt(25).Equal(percents[a.AccountID]))
	assert.True(t, decimal.RequireFromString("33.33").Equal(percents[b.AccountID]))
	assert.True(t, decimal.Zero.Equal(percents[c.AccountID]))

	mine, err := f.dashboard.Summary(f.ctx, otherDir)
	require.NoError(t, err)
	assert.Empty(t, mine.Accounts)
	assert.Zero(t, mine.TotalCredited)
}
