package dto

import (
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	AccountTypeID  string          `json:"accountTypeID" binding:"required"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // may be negative (overdrawn at opening)
}

// UpdateAccountRequest defines the data allowed for updating an account.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	AccountTypeID *string `json:"accountTypeID"`
}

// AccountBalanceResponse is a balance derived from the account's history.
type AccountBalanceResponse struct {
	AccountID      string                     `json:"accountID"`
	InitialBalance decimal.Decimal            `json:"initialBalance"`
	Balance        decimal.Decimal            `json:"balance"`
	CachedBalance  decimal.Decimal            `json:"cachedBalance"`
	ByKind         map[string]decimal.Decimal `json:"byKind"`
}
