package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls on or between Start and End.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// EntitySet names a summable column of the ledger.
type EntitySet string

const (
	SetIncome          EntitySet = "income"           // income.amount by transaction date
	SetExpense         EntitySet = "expense"          // expense.amount by transaction date
	SetLoanReceived    EntitySet = "loan_received"    // loan.amount by received date
	SetLoanRepaid      EntitySet = "loan_repaid"      // loan payment amount by payment date
	SetLoanOutstanding EntitySet = "loan_outstanding" // loan.remaining_amount
	SetDebtOriginal    EntitySet = "debt_original"    // debt.original_amount by creation date
	SetDebtOutstanding EntitySet = "debt_outstanding" // debt.remaining_amount
	SetDebtRepaid      EntitySet = "debt_repaid"      // debt payment amount by payment date
)

// Valid reports whether s is a known entity set.
func (s EntitySet) Valid() bool {
	switch s {
	case SetIncome, SetExpense, SetLoanReceived, SetLoanRepaid, SetLoanOutstanding,
		SetDebtOriginal, SetDebtOutstanding, SetDebtRepaid:
		return true
	}
	return false
}

// LedgerFilter narrows an aggregation. ProjectID is mandatory; nil fields do not filter.
// Phase and IsDirectCost only match expense rows, DebtType only debt rows, and
// Paid only loan and debt rows.
type LedgerFilter struct {
	ProjectID    string
	AccountID    *string
	Range        *DateRange
	Phase        *Phase
	IsDirectCost *bool
	DebtType     *DebtType
	Paid         *bool
}

// LedgerRow is the normalized view of one summable ledger record.
type LedgerRow struct {
	Set          EntitySet
	ProjectID    string
	AccountID    string
	Date         time.Time
	CategoryID   string
	CategoryName string
	Phase        Phase
	IsDirectCost bool
	DebtType     DebtType
	Paid         bool
	Amount       decimal.Decimal
}

// CategoryAmount is one row of a group-by-category aggregate.
type CategoryAmount struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthAmount is one row of a per-calendar-month aggregate.
type MonthAmount struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Total decimal.Decimal `json:"total"`
}
