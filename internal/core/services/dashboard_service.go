package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(accountRepo portsrepo.AccountReader) portssvc.DashboardSvc {
	return &dashboardService{accountRepo: accountRepo}
}

// Summary aggregates the active accounts visible to the actor.
func (s *dashboardService) Summary(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error) {
	filter := domain.AccountFilter{}
	if !actor.Role.IsElevated() {
		filter.OwnerUserID = actor.UserID
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for dashboard")
		return nil, err
	}

	summary := &domain.DashboardSummary{
		ByType:   []domain.TypeTotals{},
		Accounts: make([]domain.AccountUtilisation, 0, len(accounts)),
	}
	byType := make(map[domain.AccountType]*domain.TypeTotals)
	for _, acc := range accounts {
		summary.TotalCredited += acc.TotalCredited
		summary.TotalSpent += acc.TotalSpent
		summary.CurrentBalance += acc.CurrentBalance

		tt, ok := byType[acc.AccountType]
		if !ok {
			tt = &domain.TypeTotals{AccountType: acc.AccountType}
			byType[acc.AccountType] = tt
		}
		tt.AccountCount++
		tt.TotalCredited += acc.TotalCredited
		tt.TotalSpent += acc.TotalSpent
		tt.CurrentBalance += acc.CurrentBalance

		summary.Accounts = append(summary.Accounts, domain.AccountUtilisation{
			AccountID:      acc.AccountID,
			AccountName:    acc.AccountName,
			AccountType:    acc.AccountType,
			TotalCredited:  acc.TotalCredited,
			TotalSpent:     acc.TotalSpent,
			CurrentBalance: acc.CurrentBalance,
			UsedPercent:    domain.UsedPercent(acc.TotalSpent, acc.TotalCredited),
		})
	}
	for _, t := range domain.AccountTypes {
		if tt, ok := byType[t]; ok {
			summary.ByType = append(summary.ByType, *tt)
		}
	}

	s.LogDebug(ctx, "Dashboard summary built", slog.Int("accounts", len(accounts)))
	return summary, nil
}
