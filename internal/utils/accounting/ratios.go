package accounting

import (
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns numerator/denominator*100 rounded to 2 places, or zero when
// the denominator is not positive.
func Percent(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return numerator.Mul(hundred).DivRound(denominator, domain.MoneyScale)
}

// BurnRate is the average monthly spend across the months that had any spend.
// At least one month is assumed so an empty window burns nothing.
func BurnRate(months []domain.MonthAmount) decimal.Decimal {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.Total)
	}
	n := int64(len(months))
	if n < 1 {
		n = 1
	}
	return total.DivRound(decimal.NewFromInt(n), domain.MoneyScale)
}

// RunwayMonths divides cash by the burn rate; a non-positive burn rate means
// the cash never runs out.
func RunwayMonths(cash, burnRate decimal.Decimal) domain.Runway {
	if burnRate.LessThanOrEqual(decimal.Zero) {
		return domain.InfiniteRunway
	}
	return domain.Runway{Months: cash.DivRound(burnRate, domain.MoneyScale)}
}
