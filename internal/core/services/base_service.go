package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/project_books/internal/middleware"
)

const (
	defaultDebtWarningDays   = 7
	defaultKPITrailingMonths = 6
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current instant; "today" for periods and due dates is
	// its calendar date.
	Clock             func() time.Time
	DebtWarningDays   int
	KPITrailingMonths int
}

// Option configures the BaseService embedded in every service.
type Option func(*BaseService)

// WithClock replaces time.Now, which makes period resolution deterministic.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithDebtWarningDays sets the default window for upcoming debts.
func WithDebtWarningDays(days int) Option {
	return func(b *BaseService) {
		if days > 0 {
			b.DebtWarningDays = days
		}
	}
}

// WithKPITrailingMonths sets the burn-rate window of the KPI statement.
func WithKPITrailingMonths(months int) Option {
	return func(b *BaseService) {
		if months > 0 {
			b.KPITrailingMonths = months
		}
	}
}

func newBaseService(options ...Option) BaseService {
	b := BaseService{
		Clock:             time.Now,
		DebtWarningDays:   defaultDebtWarningDays,
		KPITrailingMonths: defaultKPITrailingMonths,
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

// now returns the current instant in UTC.
func (s *BaseService) now() time.Time {
	return s.Clock().UTC()
}

// today returns the current calendar date at UTC midnight.
func (s *BaseService) today() time.Time {
	t := s.Clock()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// uniqueSortedIDs drops empty and repeated IDs and sorts the rest, giving a
// stable lock order.
func uniqueSortedIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func dateOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func optionalID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}
