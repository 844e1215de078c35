// Package query holds the paging and date-range parameters shared by every list endpoint.
package query

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
)

// List is embedded in the list filters of each resource
type List struct {
	Search   string     `form:"search" binding:"max=200"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"max=50"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ToFilter builds a domain filter. An empty OrderBy falls back to orderBy desc,
// and DateTo is moved to the end of its day so the range is inclusive.
func (l List) ToFilter(orderBy string) shared.Filter {
	f := shared.DefaultFilter()
	if l.Page > 0 {
		f.Page = l.Page
	}
	if l.PageSize > 0 {
		f.PageSize = l.PageSize
	}
	f.OrderBy = orderBy
	if l.OrderBy != "" {
		f.OrderBy = l.OrderBy
	}
	if l.OrderDir != "" {
		f.OrderDir = l.OrderDir
	}
	f.Search = l.Search
	if l.DateFrom != nil {
		from := shared.StartOfDay(*l.DateFrom)
		f.DateFrom = &from
	}
	if l.DateTo != nil {
		to := shared.EndOfDay(*l.DateTo)
		f.DateTo = &to
	}
	return f.Normalize()
}

// Page is a page of items with the total match count
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// NewPage wraps items with the paging values of filter
func NewPage[T any](items []T, total int64, filter shared.Filter) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}
}

// MapPage converts every item of a domain slice
func MapPage[S, T any](items []S, total int64, filter shared.Filter, convert func(*S) T) *Page[T] {
	out := make([]T, 0, len(items))
	for i := range items {
		out = append(out, convert(&items[i]))
	}
	return NewPage(out, total, filter)
}
