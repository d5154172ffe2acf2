package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/handlers"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "handler-test-secret"

var (
	director = domain.Actor{UserID: "dir-1", Role: domain.RoleDirecteur}
	admin    = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
)

type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	cfg            *config.Config
	accounts       *MockAccountService
	expenses       *MockExpenseService
	credits        *MockCreditService
	reconciliation *MockReconciliationService
	dashboard      *MockDashboardService
	users          *MockUserService
	auth           *MockAuthService
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.accounts = new(MockAccountService)
	s.expenses = new(MockExpenseService)
	s.credits = new(MockCreditService)
	s.reconciliation = new(MockReconciliationService)
	s.dashboard = new(MockDashboardService)
	s.users = new(MockUserService)
	s.auth = new(MockAuthService)

	s.cfg = &config.Config{
		JWTSecret:       testJWTSecret,
		IsProduction:    true,
		LoginRateLimit:  "2-M",
		UploadDir:       s.T().TempDir(),
		MaxUploadSizeMB: 1,
		CurrencyLabel:   "FCFA",
	}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	err := handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		Account:        s.accounts,
		Expense:        s.expenses,
		Credit:         s.credits,
		Reconciliation: s.reconciliation,
		Dashboard:      s.dashboard,
		User:           s.users,
		Auth:           s.auth,
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.expenses.AssertExpectations(s.T())
	s.credits.AssertExpectations(s.T())
	s.reconciliation.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.auth.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) token(actor domain.Actor) string {
	tok, _, err := utils.GenerateJWT(actor.UserID, string(actor.Role), testJWTSecret, time.Hour, "test", time.Now())
	s.Require().NoError(err)
	return tok
}

func (s *HandlerTestSuite) do(method, path string, actor *domain.Actor, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(*actor))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *HandlerTestSuite) TestRequiresBearerToken() {
	w := s.do(http.MethodGet, "/api/v1/accounts", nil, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestCreateExpense() {
	expense := &domain.Expense{ExpenseID: "exp-1", AccountID: "acc-1", Total: 1500, Designation: "Fuel"}
	s.expenses.On("RecordExpense", mock.Anything, director, mock.MatchedBy(func(req dto.CreateExpenseRequest) bool {
		return req.AccountID == "acc-1" && req.Total != nil && *req.Total == 1500
	})).Return(expense, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/expenses", &director, gin.H{"accountID": "acc-1", "designation": "Fuel", "total": 1500})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	s.decode(w, &resp)
	s.Equal("exp-1", resp.ExpenseID)
	s.Equal(int64(1500), resp.Total)
}

func (s *HandlerTestSuite) TestCreateExpenseRejectsInvalidBody() {
	w := s.do(http.MethodPost, "/api/v1/expenses", &director, gin.H{"accountID": "acc-1", "designation": "Fuel", "total": -3})
	s.Equal(http.StatusBadRequest, w.Code)
	s.expenses.AssertNotCalled(s.T(), "RecordExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestInsufficientBalanceCarriesFigures() {
	s.expenses.On("RecordExpense", mock.Anything, director, mock.Anything).
		Return(nil, &apperrors.InsufficientBalanceError{AccountID: "acc-1", Available: 1000, Requested: 1500}).Once()

	w := s.do(http.MethodPost, "/api/v1/expenses", &director, gin.H{"accountID": "acc-1", "designation": "Fuel", "total": 1500})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.InsufficientBalanceResponse
	s.decode(w, &resp)
	s.Equal("INSUFFICIENT_BALANCE", resp.Code)
	s.Equal(int64(1000), resp.Available)
	s.Equal(int64(1500), resp.Requested)
	s.Equal(int64(500), resp.Shortfall)
}

func (s *HandlerTestSuite) TestBudgetExceededCarriesFigures() {
	s.expenses.On("UpdateExpense", mock.Anything, director, "exp-1", mock.Anything).
		Return(nil, &apperrors.BudgetExceededError{AccountID: "acc-1", Budget: 1000, Used: 900, Requested: 200}).Once()

	w := s.do(http.MethodPut, "/api/v1/expenses/exp-1", &director, gin.H{"total": 1100})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.BudgetExceededResponse
	s.decode(w, &resp)
	s.Equal("BUDGET_EXCEEDED", resp.Code)
	s.Equal(int64(1000), resp.Budget)
	s.Equal(int64(900), resp.Used)
	s.Equal(int64(200), resp.Requested)
}

func (s *HandlerTestSuite) TestEditWindowRefusal() {
	s.expenses.On("DeleteExpense", mock.Anything, director, "exp-old").
		Return(&apperrors.ForbiddenError{Reason: "edit window has elapsed", Expired: true}).Once()
	s.expenses.On("DeleteExpense", mock.Anything, director, "exp-other").
		Return(apperrors.NewForbidden("only the creator or an elevated role may modify this entry")).Once()

	w := s.do(http.MethodDelete, "/api/v1/expenses/exp-old", &director, nil)
	s.Equal(http.StatusForbidden, w.Code)
	var expired handlers.ForbiddenResponse
	s.decode(w, &expired)
	s.True(expired.Expired)
	s.Require().NotNil(expired.RemainingSeconds)
	s.Equal(int64(0), *expired.RemainingSeconds)

	w = s.do(http.MethodDelete, "/api/v1/expenses/exp-other", &director, nil)
	s.Equal(http.StatusForbidden, w.Code)
	var other handlers.ForbiddenResponse
	s.decode(w, &other)
	s.False(other.Expired)
	s.Nil(other.RemainingSeconds)
}

func (s *HandlerTestSuite) TestErrorMapping() {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", nil), http.StatusBadRequest},
		{apperrors.NewAppError(http.StatusInternalServerError, "failed to query", io.ErrUnexpectedEOF), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.expenses.On("GetExpenseByID", mock.Anything, director, "exp-x").Return(nil, tc.err).Once()
		w := s.do(http.MethodGet, "/api/v1/expenses/exp-x", &director, nil)
		s.Equal(tc.code, w.Code, tc.err.Error())
	}
}

func (s *HandlerTestSuite) TestCreditDeleteValidatesKind() {
	w := s.do(http.MethodDelete, "/api/v1/credits/bonus/cr-1", &admin, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	s.credits.On("DeleteCredit", mock.Anything, admin, domain.SpecialCredit, "cr-1").Return(nil).Once()
	w = s.do(http.MethodDelete, "/api/v1/credits/special/cr-1", &admin, nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerTestSuite) TestAccountHardDelete() {
	s.accounts.On("DeleteAccount", mock.Anything, admin, "acc-1").Return(nil).Once()
	s.accounts.On("DeactivateAccount", mock.Anything, admin, "acc-2").Return(nil).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/accounts/acc-1?hard=true", &admin, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/accounts/acc-2", &admin, nil).Code)
}

func (s *HandlerTestSuite) TestCreateAccountValidatesType() {
	w := s.do(http.MethodPost, "/api/v1/accounts", &admin, gin.H{"accountName": "Caisse", "accountType": "savings"})
	s.Equal(http.StatusBadRequest, w.Code)

	s.accounts.On("CreateAccount", mock.Anything, admin, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.AccountType == domain.Classique && req.InitialAmount == 5000
	})).Return(&domain.Account{AccountID: "acc-9", AccountName: "Caisse", AccountType: domain.Classique, CurrentBalance: 5000, TotalCredited: 5000}, nil).Once()
	w = s.do(http.MethodPost, "/api/v1/accounts", &admin, gin.H{"accountName": "Caisse", "accountType": "classique", "initialAmount": 5000})
	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlerTestSuite) TestReconciliationRequiresElevatedRole() {
	w := s.do(http.MethodPost, "/api/v1/reconciliation/run", &director, nil)
	s.Equal(http.StatusForbidden, w.Code)

	report := &domain.ReconciliationReport{DryRun: true, Accounts: []domain.AccountCorrection{{AccountID: "acc-1", Corrected: true}}, CorrectedCount: 1}
	s.reconciliation.On("ReconcileAll", mock.Anything, true).Return(report, nil).Once()
	w = s.do(http.MethodPost, "/api/v1/reconciliation/run?dry_run=true", &admin, nil)
	s.Equal(http.StatusOK, w.Code)

	var got domain.ReconciliationReport
	s.decode(w, &got)
	s.True(got.DryRun)
	s.Equal(1, got.CorrectedCount)

	w = s.do(http.MethodPost, "/api/v1/reconciliation/run?dry_run=maybe", &admin, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestUserAdministrationIsAdminOnly() {
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users", &director, nil).Code)

	s.users.On("GetUserByID", mock.Anything, "dir-1").Return(&domain.User{UserID: "dir-1", Username: "awa", Role: domain.RoleDirecteur}, nil).Once()
	w := s.do(http.MethodGet, "/api/v1/me", &director, nil)
	s.Equal(http.StatusOK, w.Code)
	var me dto.UserResponse
	s.decode(w, &me)
	s.Equal("awa", me.Username)
}

func (s *HandlerTestSuite) TestLoginIsRateLimited() {
	s.auth.On("Login", mock.Anything, "awa", "wrong-password").Return(nil, "", time.Time{}, apperrors.ErrUnauthorized).Twice()

	body := gin.H{"username": "awa", "password": "wrong-password"}
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", nil, body).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", nil, body).Code)
	s.Equal(http.StatusTooManyRequests, s.do(http.MethodPost, "/api/v1/auth/login", nil, body).Code)
}

func (s *HandlerTestSuite) TestExportCSV() {
	qty, price := int64(2), int64(625000)
	s.expenses.On("ExportExpenses", mock.Anything, director, mock.Anything).Return([]domain.ExpenseExportRow{{
		Expense: domain.Expense{
			ExpenseID:   "exp-1",
			AccountID:   "acc-1",
			Total:       1250000,
			Quantity:    &qty,
			UnitPrice:   &price,
			ExpenseDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			Designation: "Groupe électrogène",
			AuditFields: domain.AuditFields{CreatedBy: "dir-1"},
		},
		AccountName: "Direction technique",
	}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/expenses/export.csv", &director, nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/csv")
	s.Contains(w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	s.Require().Len(lines, 2)
	s.Contains(lines[1], "06/05/2024")
	s.Contains(lines[1], utils.FormatAmount(1250000, "FCFA"))
	s.Contains(lines[1], "Groupe électrogène")
	s.Equal("Direction technique", strings.Split(lines[1], ";")[1])
	s.NotContains(lines[1], "acc-1")
}

func (s *HandlerTestSuite) TestSelectedListingForcesFlag() {
	s.expenses.On("ListExpenses", mock.Anything, director, mock.MatchedBy(func(p dto.ListExpensesParams) bool {
		return p.SelectedForInvoice != nil && *p.SelectedForInvoice
	})).Return(&dto.ListExpensesResponse{Expenses: []dto.ExpenseResponse{}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/expenses/selected?selected_for_invoice=false", &director, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) upload(filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses/exp-1/justification", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token(director))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestUploadJustification() {
	s.expenses.On("AttachJustification", mock.Anything, director, "exp-1", mock.MatchedBy(func(p string) bool {
		return strings.HasSuffix(p, ".pdf") && !strings.Contains(p, "/")
	})).Return(&domain.Expense{ExpenseID: "exp-1", JustificationPath: "stored.pdf"}, nil).Once()

	w := s.upload("facture.PDF", []byte("%PDF-1.4"))
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	entries, err := os.ReadDir(s.cfg.UploadDir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *HandlerTestSuite) TestUploadJustificationCleansUpOnRefusal() {
	s.expenses.On("AttachJustification", mock.Anything, director, "exp-1", mock.Anything).
		Return(nil, &apperrors.ForbiddenError{Reason: "edit window has elapsed", Expired: true}).Once()

	w := s.upload("facture.pdf", []byte("%PDF-1.4"))
	s.Equal(http.StatusForbidden, w.Code)

	entries, err := os.ReadDir(s.cfg.UploadDir)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *HandlerTestSuite) TestUploadJustificationRejectsType() {
	w := s.upload("script.exe", []byte("MZ"))
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
