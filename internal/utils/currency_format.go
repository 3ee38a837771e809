package utils

import (
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with the stored money precision.
// Example: 12.3456 returns "12.35", 7 returns "7.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyScale)
}
