package domain

import "github.com/shopspring/decimal"

// AccountUtilisation is an account line of the dashboard.
type AccountUtilisation struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	TotalCredited  int64           `json:"totalCredited"`
	TotalSpent     int64           `json:"totalSpent"`
	CurrentBalance int64           `json:"currentBalance"`
	UsedPercent    decimal.Decimal `json:"usedPercent"`
}

// TypeTotals aggregates the accounts of one type.
type TypeTotals struct {
	AccountType    AccountType `json:"accountType"`
	AccountCount   int         `json:"accountCount"`
	TotalCredited  int64       `json:"totalCredited"`
	TotalSpent     int64       `json:"totalSpent"`
	CurrentBalance int64       `json:"currentBalance"`
}

// DashboardSummary is the read-only overview of the visible accounts.
type DashboardSummary struct {
	TotalCredited  int64                `json:"totalCredited"`
	TotalSpent     int64                `json:"totalSpent"`
	CurrentBalance int64                `json:"currentBalance"`
	ByType         []TypeTotals         `json:"byType"`
	Accounts       []AccountUtilisation `json:"accounts"`
}

// UsedPercent returns spent/credited*100 rounded to two places, zero when uncapped.
func UsedPercent(spent, credited int64) decimal.Decimal {
	if credited <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(spent).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(credited), 2)
}
