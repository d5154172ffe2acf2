package domain

// LedgerTotals are the aggregate values recomputed from ledger entries.
type LedgerTotals struct {
	TotalCredited int64 `json:"totalCredited"`
	TotalSpent    int64 `json:"totalSpent"`
}

// Balance is credited minus spent.
func (t LedgerTotals) Balance() int64 {
	return t.TotalCredited - t.TotalSpent
}

// AggregateDelta is a change to apply to an account aggregate.
// Every constructor keeps Balance == Credited - Spent.
type AggregateDelta struct {
	Balance  int64
	Credited int64
	Spent    int64
}

// IsZero reports whether applying the delta is a no-op.
func (d AggregateDelta) IsZero() bool {
	return d.Balance == 0 && d.Credited == 0 && d.Spent == 0
}

// ExpenseInserted is the effect of recording an expense of amount.
func ExpenseInserted(amount int64) AggregateDelta {
	return AggregateDelta{Balance: -amount, Spent: amount}
}

// ExpenseDeleted is the effect of removing an expense of amount.
func ExpenseDeleted(amount int64) AggregateDelta {
	return AggregateDelta{Balance: amount, Spent: -amount}
}

// ExpenseAmountChanged is the effect of editing an expense from oldAmount to newAmount.
func ExpenseAmountChanged(oldAmount, newAmount int64) AggregateDelta {
	diff := newAmount - oldAmount
	return AggregateDelta{Balance: -diff, Spent: diff}
}

// CreditInserted is the effect of recording a credit of amount.
func CreditInserted(amount int64) AggregateDelta {
	return AggregateDelta{Balance: amount, Credited: amount}
}

// CreditDeleted is the effect of removing a credit of amount.
func CreditDeleted(amount int64) AggregateDelta {
	return AggregateDelta{Balance: -amount, Credited: -amount}
}
