package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/utils/accounting"
	"github.com/google/uuid"
)

const defaultExpensePageSize = 20

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	store       portsrepo.LedgerStore
	expenseRepo portsrepo.ExpenseRepositoryFacade
	accountRepo portsrepo.AccountReader
	enforcer    consistencyEnforcer
	editWindow  time.Duration
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithExpenseEditWindow sets how long submitters may modify their own expenses.
func WithExpenseEditWindow(window time.Duration) ExpenseServiceOption {
	return func(s *expenseService) {
		if window > 0 {
			s.editWindow = window
		}
	}
}

// WithExpenseClock replaces the service clock.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.Now = now
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(store portsrepo.LedgerStore, expenseRepo portsrepo.ExpenseRepositoryFacade, accountRepo portsrepo.AccountReader, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		store:       store,
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		editWindow:  domain.DefaultEditWindow,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) RecordExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	total, err := accounting.ResolveExpenseTotal(req.Total, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = req.ExpenseDate.UTC()
	}
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		AccountID:   req.AccountID,
		Total:       total,
		ExpenseDate: expenseDate,
		Designation: req.Designation,
		Supplier:    req.Supplier,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		ExpenseType: req.ExpenseType,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := lockActiveAccount(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if err := actor.CanSpendOn(*acc); err != nil {
			return err
		}
		if err := s.enforcer.ExpenseInserted(ctx, tx, acc, total, actor.UserID, now); err != nil {
			return err
		}
		return tx.InsertExpense(ctx, expense)
	})
	if err != nil {
		s.logLedgerError(ctx, err, "Failed to record expense", slog.String("account_id", req.AccountID), slog.Int64("amount", total))
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("account_id", expense.AccountID),
		slog.Int64("amount", total))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	now := s.now()
	var updated domain.Expense

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, acc, err := s.lockExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if err := s.checkModify(actor, current.CreatedBy, current.CreatedAt, now); err != nil {
			return err
		}

		updated = *current
		applyExpenseChanges(&updated, req)
		newTotal, err := resolveUpdatedTotal(current, req)
		if err != nil {
			return err
		}
		updated.Total = newTotal
		updated.Touch(actor.UserID, now)

		if err := s.enforcer.ExpenseAmountChanged(ctx, tx, acc, current.Total, newTotal, actor.UserID, now); err != nil {
			return err
		}
		return tx.UpdateExpense(ctx, updated)
	})
	if err != nil {
		s.logLedgerError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID), slog.Int64("amount", updated.Total))
	return &updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	now := s.now()

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		current, acc, err := s.lockExpense(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		if err := s.checkModify(actor, current.CreatedBy, current.CreatedAt, now); err != nil {
			return err
		}
		if err := tx.DeleteExpense(ctx, expenseID); err != nil {
			return err
		}
		return s.enforcer.ExpenseDeleted(ctx, tx, acc, current.Total, actor.UserID, now)
	})
	if err != nil {
		s.logLedgerError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// lockExpense locks the owning account first, then the expense row.
func (s *expenseService) lockExpense(ctx context.Context, tx portsrepo.LedgerTx, expenseID string) (*domain.Expense, *domain.Account, error) {
	peek, err := tx.FindExpense(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	acc, err := lockActiveAccount(ctx, tx, peek.AccountID)
	if err != nil {
		return nil, nil, err
	}
	current, err := tx.FindExpenseForUpdate(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	return current, acc, nil
}

// checkModify applies the role and edit window rules.
func (s *expenseService) checkModify(actor domain.Actor, createdBy string, createdAt, now time.Time) error {
	return actor.CanModifyEntry(createdBy, createdAt, now, s.editWindow)
}

func (s *expenseService) GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	if err := s.checkVisible(ctx, actor, expense.AccountID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	filter, err := s.visibleFilter(ctx, actor, params.ToExpenseFilter())
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultExpensePageSize
	}
	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	resp := dto.ToListExpensesResponse(expenses, nextToken)
	return &resp, nil
}

func (s *expenseService) ExportExpenses(ctx context.Context, actor domain.Actor, filter domain.ExpenseFilter) ([]domain.ExpenseExportRow, error) {
	filter, err := s.visibleFilter(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ExportExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to export expenses")
		return nil, err
	}

	accountFilter := domain.AccountFilter{IncludeInactive: true}
	if !actor.Role.IsElevated() {
		accountFilter.OwnerUserID = actor.UserID
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, accountFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account names for export")
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.AccountID] = a.AccountName
	}

	rows := make([]domain.ExpenseExportRow, len(expenses))
	for i, e := range expenses {
		name, ok := names[e.AccountID]
		if !ok {
			name = e.AccountID
		}
		rows[i] = domain.ExpenseExportRow{Expense: e, AccountName: name}
	}
	return rows, nil
}

func (s *expenseService) AttachJustification(ctx context.Context, actor domain.Actor, expenseID string, path string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.checkModify(actor, expense.CreatedBy, expense.CreatedAt, now); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.SetJustification(ctx, expenseID, path, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to store justification", slog.String("expense_id", expenseID))
		return nil, err
	}
	expense.JustificationPath = path
	expense.Touch(actor.UserID, now)
	return expense, nil
}

func (s *expenseService) SetInvoiceSelection(ctx context.Context, actor domain.Actor, req dto.InvoiceSelectionRequest) (int64, error) {
	ids := req.ExpenseIDs
	if !actor.Role.IsElevated() {
		visible, err := s.visibleAccountIDs(ctx, actor)
		if err != nil {
			return 0, err
		}
		ids = make([]string, 0, len(req.ExpenseIDs))
		for _, id := range req.ExpenseIDs {
			e, err := s.expenseRepo.FindExpenseByID(ctx, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					continue
				}
				return 0, err
			}
			if _, ok := visible[e.AccountID]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return 0, nil
		}
	}
	n, err := s.expenseRepo.SetInvoiceSelection(ctx, ids, req.Selected, actor.UserID, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to update invoice selection")
		return 0, err
	}
	s.LogInfo(ctx, "Invoice selection updated", slog.Int64("updated", n), slog.Bool("selected", req.Selected))
	return n, nil
}

// visibleFilter restricts a filter to the accounts of a non-elevated actor.
func (s *expenseService) visibleFilter(ctx context.Context, actor domain.Actor, filter domain.ExpenseFilter) (domain.ExpenseFilter, error) {
	if actor.Role.IsElevated() {
		return filter, nil
	}
	visible, err := s.visibleAccountIDs(ctx, actor)
	if err != nil {
		return filter, err
	}
	if filter.AccountID != "" {
		if _, ok := visible[filter.AccountID]; !ok {
			return filter, apperrors.NewForbidden("account is not assigned to this user")
		}
	}
	filter.AccountIDs = make([]string, 0, len(visible))
	for id := range visible {
		filter.AccountIDs = append(filter.AccountIDs, id)
	}
	return filter, nil
}

func (s *expenseService) visibleAccountIDs(ctx context.Context, actor domain.Actor) (map[string]struct{}, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{OwnerUserID: actor.UserID, IncludeInactive: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of user %s: %w", actor.UserID, err)
	}
	ids := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		ids[a.AccountID] = struct{}{}
	}
	return ids, nil
}

func (s *expenseService) checkVisible(ctx context.Context, actor domain.Actor, accountID string) error {
	if actor.Role.IsElevated() {
		return nil
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !actor.CanView(*acc) {
		return apperrors.NewForbidden("account is not assigned to this user")
	}
	return nil
}

// logLedgerError logs unexpected failures at error level and business refusals at info.
func (s *expenseService) logLedgerError(ctx context.Context, err error, msg string, keyvals ...any) {
	logLedgerError(ctx, &s.BaseService, err, msg, keyvals...)
}

func logLedgerError(ctx context.Context, s *BaseService, err error, msg string, keyvals ...any) {
	if isBusinessRefusal(err) {
		s.LogInfo(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isBusinessRefusal(err error) bool {
	for _, target := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrForbidden,
		apperrors.ErrInsufficientBalance, apperrors.ErrBudgetExceeded, apperrors.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func applyExpenseChanges(e *domain.Expense, req dto.UpdateExpenseRequest) {
	if req.ExpenseDate != nil {
		e.ExpenseDate = req.ExpenseDate.UTC()
	}
	if req.Designation != nil {
		e.Designation = *req.Designation
	}
	if req.Supplier != nil {
		e.Supplier = *req.Supplier
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Subcategory != nil {
		e.Subcategory = *req.Subcategory
	}
	if req.ExpenseType != nil {
		e.ExpenseType = *req.ExpenseType
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Quantity != nil {
		e.Quantity = req.Quantity
	}
	if req.UnitPrice != nil {
		e.UnitPrice = req.UnitPrice
	}
}

// resolveUpdatedTotal keeps the current total unless a new total is given or the
// update leaves a complete quantity and unit price pair to price from.
func resolveUpdatedTotal(current *domain.Expense, req dto.UpdateExpenseRequest) (int64, error) {
	if req.Total != nil {
		return accounting.ResolveExpenseTotal(req.Total, nil, nil)
	}
	if req.Quantity == nil && req.UnitPrice == nil {
		return current.Total, nil
	}
	quantity, unitPrice := current.Quantity, current.UnitPrice
	if req.Quantity != nil {
		quantity = req.Quantity
	}
	if req.UnitPrice != nil {
		unitPrice = req.UnitPrice
	}
	if quantity == nil || unitPrice == nil {
		return current.Total, nil
	}
	return accounting.ResolveExpenseTotal(nil, quantity, unitPrice)
}
