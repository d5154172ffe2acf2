package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker_app/internal/utils/accounting"
)

// memState is one snapshot of the ledger tables.
type memState struct {
	accounts map[string]domain.Account
	expenses map[string]domain.Expense
	credits  map[domain.CreditKind]map[string]domain.Credit
}

func newMemState() memState {
	return memState{
		accounts: map[string]domain.Account{},
		expenses: map[string]domain.Expense{},
		credits: map[domain.CreditKind]map[string]domain.Credit{
			domain.OrdinaryCredit: {},
			domain.SpecialCredit:  {},
		},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.expenses {
		c.expenses[k] = v
	}
	for kind, rows := range s.credits {
		for k, v := range rows {
			c.credits[kind][k] = v
		}
	}
	return c
}

// memStore is an in-memory LedgerStore and read repository.
// One mutex serializes transactions; a transaction works on a copy that replaces
// the committed state only when fn succeeds.
type memStore struct {
	mu     sync.Mutex
	state  memState
	failOn map[string]error
	txs    int
}

func newMemStore() *memStore {
	return &memStore{state: newMemState(), failOn: map[string]error{}}
}

var (
	_ portsrepo.LedgerStore             = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade = (*memStore)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*memStore)(nil)
	_ portsrepo.CreditReader            = (*memStore)(nil)
)

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs++
	tx := &memTx{state: m.state.clone(), failOn: m.failOn}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

// mutate edits committed state directly, bypassing every check.
func (m *memStore) mutate(fn func(s *memState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *memStore) account(id string) domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.accounts[id]
}

// ledgerTotals recomputes an account from its committed rows.
func (m *memStore) ledgerTotals(id string) domain.LedgerTotals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sumAccount(m.state, id)
}

func (m *memStore) expenseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.expenses)
}

func sumAccount(s memState, id string) domain.LedgerTotals {
	var expenses []domain.Expense
	for _, e := range s.expenses {
		if e.AccountID == id {
			expenses = append(expenses, e)
		}
	}
	var credits []domain.Credit
	for _, rows := range s.credits {
		for _, c := range rows {
			if c.AccountID == id {
				credits = append(credits, c)
			}
		}
	}
	return accounting.SumTotals(expenses, credits)
}

// --- read repositories ---

func (m *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.state.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (m *memStore) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, acc := range m.state.accounts {
		if filter.OwnerUserID != "" && acc.OwnerUserID != filter.OwnerUserID {
			continue
		}
		if filter.AccountType != "" && acc.AccountType != filter.AccountType {
			continue
		}
		if !filter.IncludeInactive && !acc.IsActive {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountName < out[j].AccountName })
	return out, nil
}

func (m *memStore) ListAccountIDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.state.accounts))
	for id := range m.state.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.state.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	cur.AccountName = account.AccountName
	cur.AccountType = account.AccountType
	cur.OwnerUserID = account.OwnerUserID
	cur.IsActive = account.IsActive
	cur.LastUpdatedAt = account.LastUpdatedAt
	cur.LastUpdatedBy = account.LastUpdatedBy
	m.state.accounts[account.AccountID] = cur
	return nil
}

func (m *memStore) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.state.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	cur.IsActive = false
	cur.LastUpdatedAt = now
	cur.LastUpdatedBy = userID
	m.state.accounts[accountID] = cur
	return nil
}

func (m *memStore) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	all, err := m.ExportExpenses(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil, nil
}

func (m *memStore) ExportExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var allowed map[string]bool
	if filter.AccountIDs != nil {
		allowed = map[string]bool{}
		for _, id := range filter.AccountIDs {
			allowed[id] = true
		}
	}
	out := []domain.Expense{}
	for _, e := range m.state.expenses {
		if filter.AccountID != "" && e.AccountID != filter.AccountID {
			continue
		}
		if allowed != nil && !allowed[e.AccountID] {
			continue
		}
		if filter.CreatedBy != "" && e.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.SelectedForInvoice != nil && e.SelectedForInvoice != *filter.SelectedForInvoice {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpenseDate.Equal(out[j].ExpenseDate) {
			return out[i].ExpenseDate.After(out[j].ExpenseDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) SetJustification(ctx context.Context, expenseID string, path string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.expenses[expenseID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.JustificationPath = path
	e.LastUpdatedAt = now
	e.LastUpdatedBy = userID
	m.state.expenses[expenseID] = e
	return nil
}

func (m *memStore) SetInvoiceSelection(ctx context.Context, expenseIDs []string, selected bool, userID string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range expenseIDs {
		e, ok := m.state.expenses[id]
		if !ok || e.SelectedForInvoice == selected {
			continue
		}
		e.SelectedForInvoice = selected
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		m.state.expenses[id] = e
		n++
	}
	return n, nil
}

func (m *memStore) ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Credit
	for _, rows := range m.state.credits {
		for _, c := range rows {
			if c.AccountID == accountID {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- transaction ---

type memTx struct {
	state  memState
	failOn map[string]error
}

func (tx *memTx) fail(op string) error {
	return tx.failOn[op]
}

func (tx *memTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if err := tx.fail("LockAccount"); err != nil {
		return nil, err
	}
	acc, ok := tx.state.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &acc, nil
}

func (tx *memTx) ApplyAggregateDelta(ctx context.Context, accountID string, delta domain.AggregateDelta, userID string, now time.Time) error {
	if err := tx.fail("ApplyAggregateDelta"); err != nil {
		return err
	}
	acc, ok := tx.state.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.Apply(delta)
	if !acc.IsConsistent() {
		return fmt.Errorf("%w: balance check constraint", apperrors.ErrValidation)
	}
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	tx.state.accounts[accountID] = acc
	return nil
}

func (tx *memTx) OverwriteAggregate(ctx context.Context, accountID string, totals domain.LedgerTotals, now time.Time) error {
	if err := tx.fail("OverwriteAggregate"); err != nil {
		return err
	}
	acc, ok := tx.state.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	acc.TotalCredited = totals.TotalCredited
	acc.TotalSpent = totals.TotalSpent
	acc.CurrentBalance = totals.Balance()
	acc.LastUpdatedAt = now
	tx.state.accounts[accountID] = acc
	return nil
}

func (tx *memTx) SumLedger(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	if err := tx.fail("SumLedger"); err != nil {
		return domain.LedgerTotals{}, err
	}
	return sumAccount(tx.state, accountID), nil
}

func (tx *memTx) InsertExpense(ctx context.Context, expense domain.Expense) error {
	if err := tx.fail("InsertExpense"); err != nil {
		return err
	}
	if _, ok := tx.state.expenses[expense.ExpenseID]; ok {
		return apperrors.ErrDuplicate
	}
	tx.state.expenses[expense.ExpenseID] = expense
	return nil
}

func (tx *memTx) FindExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	e, ok := tx.state.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return &e, nil
}

func (tx *memTx) FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return tx.FindExpense(ctx, expenseID)
}

func (tx *memTx) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	if err := tx.fail("UpdateExpense"); err != nil {
		return err
	}
	if _, ok := tx.state.expenses[expense.ExpenseID]; !ok {
		return apperrors.ErrNotFound
	}
	tx.state.expenses[expense.ExpenseID] = expense
	return nil
}

func (tx *memTx) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := tx.fail("DeleteExpense"); err != nil {
		return err
	}
	if _, ok := tx.state.expenses[expenseID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(tx.state.expenses, expenseID)
	return nil
}

func (tx *memTx) InsertCredit(ctx context.Context, credit domain.Credit) error {
	if err := tx.fail("InsertCredit"); err != nil {
		return err
	}
	rows := tx.state.credits[credit.Kind]
	if _, ok := rows[credit.CreditID]; ok {
		return apperrors.ErrDuplicate
	}
	rows[credit.CreditID] = credit
	return nil
}

func (tx *memTx) FindCredit(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error) {
	c, ok := tx.state.credits[kind][creditID]
	if !ok {
		return nil, fmt.Errorf("credit %s: %w", creditID, apperrors.ErrNotFound)
	}
	return &c, nil
}

func (tx *memTx) FindCreditForUpdate(ctx context.Context, kind domain.CreditKind, creditID string) (*domain.Credit, error) {
	return tx.FindCredit(ctx, kind, creditID)
}

func (tx *memTx) DeleteCredit(ctx context.Context, kind domain.CreditKind, creditID string) error {
	if err := tx.fail("DeleteCredit"); err != nil {
		return err
	}
	if _, ok := tx.state.credits[kind][creditID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(tx.state.credits[kind], creditID)
	return nil
}

func (tx *memTx) InsertAccount(ctx context.Context, account domain.Account) error {
	if err := tx.fail("InsertAccount"); err != nil {
		return err
	}
	for _, a := range tx.state.accounts {
		if a.IsActive && a.AccountName == account.AccountName {
			return apperrors.ErrDuplicate
		}
	}
	tx.state.accounts[account.AccountID] = account
	return nil
}

func (tx *memTx) DeleteAccount(ctx context.Context, accountID string) error {
	for _, e := range tx.state.expenses {
		if e.AccountID == accountID {
			return apperrors.ErrConflict
		}
	}
	for _, rows := range tx.state.credits {
		for id, c := range rows {
			if c.AccountID == accountID {
				delete(rows, id)
			}
		}
	}
	delete(tx.state.accounts, accountID)
	return nil
}
