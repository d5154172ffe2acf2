package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountName   string             `json:"accountName" binding:"required,max=255"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,account_type"`
	OwnerUserID   *string            `json:"ownerUserID"`   // Optional director the account is assigned to
	InitialAmount int64              `json:"initialAmount"` // Recorded as an initial credit when non-zero
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountName *string             `json:"accountName" binding:"omitempty,max=255"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,account_type"`
	OwnerUserID *string             `json:"ownerUserID"` // Empty string clears the owner
	IsActive    *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	AccountName    string             `json:"accountName"`
	AccountType    domain.AccountType `json:"accountType"`
	OwnerUserID    string             `json:"ownerUserID,omitempty"`
	CurrentBalance int64              `json:"currentBalance"`
	TotalCredited  int64              `json:"totalCredited"`
	TotalSpent     int64              `json:"totalSpent"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		AccountName:    acc.AccountName,
		AccountType:    acc.AccountType,
		OwnerUserID:    acc.OwnerUserID,
		CurrentBalance: acc.CurrentBalance,
		TotalCredited:  acc.TotalCredited,
		TotalSpent:     acc.TotalSpent,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType     string `form:"type" binding:"omitempty,account_type"`
	IncludeInactive bool   `form:"include_inactive"`
	Limit           int    `form:"limit,default=100" binding:"min=0,max=500"`
	Offset          int    `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
