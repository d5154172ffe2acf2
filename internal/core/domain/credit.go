package domain

import "time"

// CreditKind selects the ledger table a credit lives in.
type CreditKind string

const (
	OrdinaryCredit CreditKind = "ordinary" // credit_history
	SpecialCredit  CreditKind = "special"  // special_credit_history
)

// IsValid reports whether k is a known credit kind.
func (k CreditKind) IsValid() bool {
	return k == OrdinaryCredit || k == SpecialCredit
}

// Credit is a credit entry against an account.
// IsInitial marks the synthetic entry recorded when an account is opened with a starting amount.
type Credit struct {
	CreditID    string     `json:"creditID"`
	AccountID   string     `json:"accountID"`
	Kind        CreditKind `json:"kind"`
	Amount      int64      `json:"amount"`
	CreditDate  time.Time  `json:"creditDate"`
	Description string     `json:"description"`
	IsInitial   bool       `json:"isInitial"`
	AuditFields
}
