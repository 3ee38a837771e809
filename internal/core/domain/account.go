package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is a project-agnostic lookup row (cash, bank, wallet, ...).
type AccountType struct {
	AccountTypeID string `json:"accountTypeID"`
	Name          string `json:"name"`
	NameAlt       string `json:"nameAlt"`
}

// Account is a cash-holding bucket within a project.
//
// CurrentBalance is a cache of the reconciliation formula over the account's
// full movement history; it is rewritten in the same storage transaction as
// every movement that touches the account.
type Account struct {
	AccountID      string          `json:"accountID"`
	ProjectID      string          `json:"projectID"`
	Name           string          `json:"name"`
	AccountTypeID  string          `json:"accountTypeID"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
