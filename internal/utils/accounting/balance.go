package accounting

import (
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecomputeBalance applies every movement to the opening balance:
//
//	initial + income - expense + loans - loan payments
//	  + debts owed by us - debts owed to us
//	  - repayments of debts owed by us + repayments of debts owed to us
//
// Movements are not filtered by account; callers pass the account's full history.
// The result may be negative.
func RecomputeBalance(initial decimal.Decimal, movements []domain.CashMovement) decimal.Decimal {
	balance := initial
	for _, m := range movements {
		balance = balance.Add(m.Contribution())
	}
	return domain.RoundMoney(balance)
}

// BalanceBreakdown is the per-kind total of an account's movements.
type BalanceBreakdown struct {
	Initial decimal.Decimal
	ByKind  map[domain.MovementKind]decimal.Decimal
	Balance decimal.Decimal
}

// Breakdown groups movements by kind alongside the resulting balance.
func Breakdown(initial decimal.Decimal, movements []domain.CashMovement) BalanceBreakdown {
	byKind := make(map[domain.MovementKind]decimal.Decimal)
	for _, m := range movements {
		byKind[m.Kind] = byKind[m.Kind].Add(m.Amount)
	}
	return BalanceBreakdown{
		Initial: initial,
		ByKind:  byKind,
		Balance: RecomputeBalance(initial, movements),
	}
}
