// Package period maps symbolic reporting periods to concrete date windows.
package period

import (
	"strings"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// Token is a symbolic period.
type Token string

const (
	Today  Token = "today"
	Week   Token = "week"
	Month  Token = "month"
	Year   Token = "year"
	Custom Token = "custom"
)

// ParseToken normalizes case and surrounding whitespace. Unknown input is
// returned as-is; Resolve treats it as Month.
func ParseToken(s string) Token {
	return Token(strings.ToLower(strings.TrimSpace(s)))
}

// Resolve returns the inclusive window for token anchored at today.
// Custom needs both bounds; anything unresolvable falls back to Month.
func Resolve(token Token, customStart, customEnd *time.Time, today time.Time) domain.DateRange {
	today = domain.DateOnly(today)
	switch token {
	case Today:
		return domain.DateRange{Start: today, End: today}
	case Week:
		// time.Weekday has Sunday=0; shift so Monday is day zero.
		offset := (int(today.Weekday()) + 6) % 7
		return domain.DateRange{Start: today.AddDate(0, 0, -offset), End: today}
	case Year:
		return domain.DateRange{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), End: today}
	case Custom:
		if customStart != nil && customEnd != nil {
			return domain.DateRange{Start: domain.DateOnly(*customStart), End: domain.DateOnly(*customEnd)}
		}
	}
	return monthToDate(today)
}

// TrailingMonths is the window covering the current month and the n-1 before it,
// ending today.
func TrailingMonths(today time.Time, n int) domain.DateRange {
	if n < 1 {
		n = 1
	}
	today = domain.DateOnly(today)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{Start: first.AddDate(0, -(n - 1), 0), End: today}
}

func monthToDate(today time.Time) domain.DateRange {
	return domain.DateRange{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}
}
