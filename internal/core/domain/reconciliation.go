package domain

import "time"

// AccountCorrection reports the outcome of recomputing one account aggregate.
type AccountCorrection struct {
	AccountID        string `json:"account_id"`
	AccountName      string `json:"account_name"`
	OldTotalSpent    int64  `json:"old_total_spent"`
	NewTotalSpent    int64  `json:"new_total_spent"`
	OldTotalCredited int64  `json:"old_total_credited"`
	NewTotalCredited int64  `json:"new_total_credited"`
	OldBalance       int64  `json:"old_balance"`
	NewBalance       int64  `json:"new_balance"`
	Corrected        bool   `json:"corrected"`
}

// NewAccountCorrection compares the stored aggregate of acc with recomputed totals.
// Corrected is set when they diverge; the caller decides whether to persist.
func NewAccountCorrection(acc Account, real LedgerTotals) AccountCorrection {
	c := AccountCorrection{
		AccountID:        acc.AccountID,
		AccountName:      acc.AccountName,
		OldTotalSpent:    acc.TotalSpent,
		NewTotalSpent:    real.TotalSpent,
		OldTotalCredited: acc.TotalCredited,
		NewTotalCredited: real.TotalCredited,
		OldBalance:       acc.CurrentBalance,
		NewBalance:       real.Balance(),
	}
	c.Corrected = c.OldTotalSpent != c.NewTotalSpent ||
		c.OldTotalCredited != c.NewTotalCredited ||
		c.OldBalance != c.NewBalance
	return c
}

// ReconciliationReport is the result of a reconciliation run.
// With DryRun set, divergences are reported but not written back.
type ReconciliationReport struct {
	RunAt          time.Time           `json:"run_at"`
	DryRun         bool                `json:"dry_run"`
	Accounts       []AccountCorrection `json:"accounts"`
	CorrectedCount int                 `json:"corrected_count"`
}
