package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, actor domain.Actor, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, actor domain.Actor, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Actor, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, actor domain.Actor, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	return m.Called(ctx, actor, accountID).Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, actor domain.Actor, accountID string) error {
	return m.Called(ctx, actor, accountID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) RecordExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	return m.Called(ctx, actor, expenseID).Error(0)
}
func (m *MockExpenseService) GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}
func (m *MockExpenseService) ExportExpenses(ctx context.Context, actor domain.Actor, filter domain.ExpenseFilter) ([]domain.ExpenseExportRow, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseExportRow), args.Error(1)
}
func (m *MockExpenseService) AttachJustification(ctx context.Context, actor domain.Actor, expenseID string, path string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) SetInvoiceSelection(ctx context.Context, actor domain.Actor, req dto.InvoiceSelectionRequest) (int64, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) RecordCredit(ctx context.Context, actor domain.Actor, accountID string, req dto.CreateCreditRequest) (*domain.Credit, error) {
	args := m.Called(ctx, actor, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}
func (m *MockCreditService) DeleteCredit(ctx context.Context, actor domain.Actor, kind domain.CreditKind, creditID string) error {
	return m.Called(ctx, actor, kind, creditID).Error(0)
}
func (m *MockCreditService) ListCredits(ctx context.Context, actor domain.Actor, accountID string) ([]domain.Credit, error) {
	args := m.Called(ctx, actor, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

// --- Mock ReconciliationService ---
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

var _ portssvc.ReconciliationSvc = (*MockReconciliationService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, actor domain.Actor) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", time.Time{}, args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Get(2).(time.Time), args.Error(3)
}
func (m *MockAuthService) LoginWithGoogle(ctx context.Context, idToken string) (*domain.User, string, time.Time, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, "", time.Time{}, args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Get(2).(time.Time), args.Error(3)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)
