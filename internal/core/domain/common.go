package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for amounts and rates.
const MoneyScale = 2

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Phase is the lifecycle stage of a project or the stage an expense was booked against.
type Phase string

const (
	PhaseBuilding  Phase = "building"
	PhaseOperating Phase = "operating"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p == PhaseBuilding || p == PhaseOperating
}

// RoundMoney rounds an amount to the stored precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
