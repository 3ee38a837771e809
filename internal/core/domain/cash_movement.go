package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind enumerates every way money enters or leaves an account.
// Only income and expense kinds are profit-and-loss events; the loan and
// debt kinds move cash without touching any P&L aggregate.
type MovementKind int

const (
	MovementIncome MovementKind = iota + 1
	MovementExpense
	MovementLoanReceived     // loan principal credited at creation
	MovementLoanRepaid       // loan payment
	MovementDebtByUsReceived // someone lent us cash
	MovementDebtToUsGiven    // we lent cash out
	MovementDebtByUsRepaid   // we repay a debt
	MovementDebtToUsRepaid   // a debtor repays us
)

var movementKindNames = map[MovementKind]string{
	MovementIncome:           "income",
	MovementExpense:          "expense",
	MovementLoanReceived:     "loan_received",
	MovementLoanRepaid:       "loan_repaid",
	MovementDebtByUsReceived: "debt_by_us_received",
	MovementDebtToUsGiven:    "debt_to_us_given",
	MovementDebtByUsRepaid:   "debt_by_us_repaid",
	MovementDebtToUsRepaid:   "debt_to_us_repaid",
}

func (k MovementKind) String() string {
	if s, ok := movementKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Sign is +1 for cash in and -1 for cash out. Unknown kinds contribute nothing.
func (k MovementKind) Sign() int {
	switch k {
	case MovementIncome, MovementLoanReceived, MovementDebtByUsReceived, MovementDebtToUsRepaid:
		return 1
	case MovementExpense, MovementLoanRepaid, MovementDebtToUsGiven, MovementDebtByUsRepaid:
		return -1
	default:
		return 0
	}
}

// AffectsProfitAndLoss reports whether the movement is a revenue or cost event.
func (k MovementKind) AffectsProfitAndLoss() bool {
	return k == MovementIncome || k == MovementExpense
}

// CashMovement is one signed contribution to an account's balance.
type CashMovement struct {
	Kind      MovementKind    `json:"kind"`
	AccountID string          `json:"accountID"`
	SourceID  string          `json:"sourceID"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// Contribution returns the signed effect of the movement on the account balance.
func (m CashMovement) Contribution() decimal.Decimal {
	return m.Amount.Mul(decimal.NewFromInt(int64(m.Kind.Sign())))
}
