package pgsql

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

// PgsqlIntegrationSuite runs against a disposable database named by PGSQL_TEST_URL.
type PgsqlIntegrationSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	now   time.Time
}

func TestPgsqlIntegration(t *testing.T) {
	if os.Getenv("PGSQL_TEST_URL") == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	suite.Run(t, new(PgsqlIntegrationSuite))
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	url := os.Getenv("PGSQL_TEST_URL")

	_, err := database.RunMigrations(url, "file://../../../../migrations", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PgsqlIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE expenses, credit_history, special_credit_history, accounts, users CASCADE`)
	s.Require().NoError(err)
	s.now = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
}

func (s *PgsqlIntegrationSuite) audit() domain.AuditFields {
	return domain.AuditFields{CreatedAt: s.now, CreatedBy: "admin-1", LastUpdatedAt: s.now, LastUpdatedBy: "admin-1"}
}

// openAccount creates an account credited with amount, the way the account service does.
func (s *PgsqlIntegrationSuite) openAccount(name string, amount int64) string {
	id := uuid.NewString()
	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertAccount(ctx, domain.Account{AccountID: id, AccountName: name, AccountType: domain.Classique, IsActive: true, AuditFields: s.audit()}); err != nil {
			return err
		}
		if err := tx.InsertCredit(ctx, domain.Credit{CreditID: uuid.NewString(), AccountID: id, Kind: domain.OrdinaryCredit, Amount: amount, CreditDate: s.now, IsInitial: true, AuditFields: s.audit()}); err != nil {
			return err
		}
		return tx.ApplyAggregateDelta(ctx, id, domain.CreditInserted(amount), "admin-1", s.now)
	})
	s.Require().NoError(err)
	return id
}

func (s *PgsqlIntegrationSuite) spend(accountID string, total int64, day int) string {
	id := uuid.NewString()
	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.LockAccount(ctx, accountID); err != nil {
			return err
		}
		e := domain.Expense{
			ExpenseID:   id,
			AccountID:   accountID,
			Total:       total,
			ExpenseDate: time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
			Designation: "Carburant",
			AuditFields: s.audit(),
		}
		if err := tx.InsertExpense(ctx, e); err != nil {
			return err
		}
		return tx.ApplyAggregateDelta(ctx, accountID, domain.ExpenseInserted(total), "admin-1", s.now)
	})
	s.Require().NoError(err)
	return id
}

func (s *PgsqlIntegrationSuite) TestAggregateMatchesLedger() {
	id := s.openAccount("Caisse", 1_000_000)
	s.spend(id, 140_000, 1)

	acc, err := s.repos.AccountRepo.FindAccountByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(860_000), acc.CurrentBalance)
	s.Equal(int64(1_000_000), acc.TotalCredited)
	s.Equal(int64(140_000), acc.TotalSpent)

	var totals domain.LedgerTotals
	err = s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		totals, err = tx.SumLedger(ctx, id)
		return err
	})
	s.Require().NoError(err)
	s.Equal(acc.Totals(), totals)
}

func (s *PgsqlIntegrationSuite) TestFailedTransactionLeavesNoTrace() {
	id := s.openAccount("Caisse", 1_000)
	boom := errors.New("boom")

	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.InsertExpense(ctx, domain.Expense{ExpenseID: uuid.NewString(), AccountID: id, Total: 500, ExpenseDate: s.now, AuditFields: s.audit()}); err != nil {
			return err
		}
		if err := tx.ApplyAggregateDelta(ctx, id, domain.ExpenseInserted(500), "admin-1", s.now); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	acc, err := s.repos.AccountRepo.FindAccountByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(1_000), acc.CurrentBalance)
	expenses, _, err := s.repos.ExpenseRepo.ListExpenses(s.ctx, domain.ExpenseFilter{AccountID: id}, 10, nil)
	s.Require().NoError(err)
	s.Empty(expenses)
}

func (s *PgsqlIntegrationSuite) TestInconsistentDeltaViolatesCheck() {
	id := s.openAccount("Caisse", 1_000)
	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.ApplyAggregateDelta(ctx, id, domain.AggregateDelta{Balance: -10}, "admin-1", s.now)
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PgsqlIntegrationSuite) TestActiveNameIsUnique() {
	s.openAccount("Caisse", 1_000)
	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.InsertAccount(ctx, domain.Account{AccountID: uuid.NewString(), AccountName: "Caisse", AccountType: domain.Depot, IsActive: true, AuditFields: s.audit()})
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgsqlIntegrationSuite) TestDeleteAccountWithExpensesConflicts() {
	id := s.openAccount("Caisse", 1_000)
	s.spend(id, 100, 2)

	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.DeleteAccount(ctx, id)
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	empty := s.openAccount("Vide", 500)
	err = s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.DeleteAccount(ctx, empty)
	})
	s.Require().NoError(err)
	credits, err := s.repos.CreditRepo.ListCreditsByAccount(s.ctx, empty)
	s.Require().NoError(err)
	s.Empty(credits)
}

func (s *PgsqlIntegrationSuite) TestCreditsOfBothKindsAreMerged() {
	id := s.openAccount("Caisse", 1_000)
	err := s.repos.LedgerStore.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		c := domain.Credit{CreditID: uuid.NewString(), AccountID: id, Kind: domain.SpecialCredit, Amount: 250, CreditDate: s.now.AddDate(0, 0, 1), AuditFields: s.audit()}
		if err := tx.InsertCredit(ctx, c); err != nil {
			return err
		}
		return tx.ApplyAggregateDelta(ctx, id, domain.CreditInserted(250), "admin-1", s.now)
	})
	s.Require().NoError(err)

	credits, err := s.repos.CreditRepo.ListCreditsByAccount(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(credits, 2)
	s.Equal(domain.SpecialCredit, credits[0].Kind)
	s.Equal(domain.OrdinaryCredit, credits[1].Kind)
	s.True(credits[1].IsInitial)
}

func (s *PgsqlIntegrationSuite) TestExpensePagination() {
	id := s.openAccount("Caisse", 1_000_000)
	for day := 1; day <= 5; day++ {
		s.spend(id, int64(day*100), day)
	}

	var seen []int64
	var token *string
	for {
		page, next, err := s.repos.ExpenseRepo.ListExpenses(s.ctx, domain.ExpenseFilter{AccountID: id}, 2, token)
		s.Require().NoError(err)
		for _, e := range page {
			seen = append(seen, e.Total)
		}
		if next == nil {
			break
		}
		token = next
	}
	s.Equal([]int64{500, 400, 300, 200, 100}, seen)

	bad := "not-a-token"
	_, _, err := s.repos.ExpenseRepo.ListExpenses(s.ctx, domain.ExpenseFilter{}, 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PgsqlIntegrationSuite) TestInvoiceSelectionCountsChangedRows() {
	id := s.openAccount("Caisse", 1_000)
	a := s.spend(id, 100, 1)
	b := s.spend(id, 100, 2)

	n, err := s.repos.ExpenseRepo.SetInvoiceSelection(s.ctx, []string{a, b}, true, "admin-1", s.now)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.repos.ExpenseRepo.SetInvoiceSelection(s.ctx, []string{a, b}, true, "admin-1", s.now)
	s.Require().NoError(err)
	s.Equal(int64(0), n)
}

func (s *PgsqlIntegrationSuite) TestUserEmailIsCaseInsensitive() {
	err := s.repos.UserRepo.SaveUser(s.ctx, domain.User{
		UserID: uuid.NewString(), Username: "awa", PasswordHash: "x", FullName: "Awa Diop",
		Email: "Awa.Diop@example.org", Role: domain.RoleDirecteur, IsActive: true, AuditFields: s.audit(),
	})
	s.Require().NoError(err)

	u, err := s.repos.UserRepo.FindUserByEmail(s.ctx, "awa.diop@EXAMPLE.org")
	s.Require().NoError(err)
	s.Equal("awa", u.Username)

	_, err = s.repos.UserRepo.FindUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
