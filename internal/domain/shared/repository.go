package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
	// DateFrom and DateTo bound the entity's primary date column, inclusive.
	DateFrom *time.Time
	DateTo   *time.Time
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Normalize clamps paging values into their allowed ranges
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f
}

// Offset returns the row offset of the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// WithFilter returns a copy of f with key set to value
func (f Filter) WithFilter(key string, value any) Filter {
	m := make(map[string]any, len(f.Filters)+1)
	for k, v := range f.Filters {
		m[k] = v
	}
	m[key] = value
	f.Filters = m
	return f
}

// StringFilter returns the non-empty string stored under key
func (f Filter) StringFilter(key string) (string, bool) {
	v, ok := f.Filters[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// EndOfDay returns the last instant of t's calendar day, used to make DateTo inclusive
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfDay truncates t to midnight in its location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// OwnedRepository is the common persistence contract for owner-scoped entities.
// Every lookup takes the owner's user ID; rows of other users behave as missing.
type OwnedRepository[T any] interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, userID uuid.UUID, filter Filter) ([]T, error)
	Count(ctx context.Context, userID uuid.UUID, filter Filter) (int64, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
