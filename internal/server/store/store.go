// Package store defines the storage contract shared by every content kind,
// the mutex-guarded in-memory implementation and the dual-path Fallback
// that prefers the durable store and answers from memory when it fails.
package store

import (
	"context"
	"math"
	"strings"
)

// Source names the store that answered a request.
type Source string

const (
	SourceDatabase Source = "database"
	SourceMemory   Source = "memory"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100

	// FacetAll disables the facet filter.
	FacetAll = "All"
)

// Store is implemented by both the Postgres repositories and MemoryStore.
type Store[E any] interface {
	List(ctx context.Context, f Filter) (ListResult[E], error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

// Filter selects a page of records. Facet matches region (or type for
// updates) exactly; Search is a case-insensitive substring over the kind's
// search fields.
type Filter struct {
	Facet  string
	Search string
	Page   int
	Limit  int
}

// Normalize applies defaults and bounds. Call it before Offset.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	// Page*Limit must fit in an int.
	if maxPage := math.MaxInt / f.Limit; f.Page > maxPage {
		f.Page = maxPage
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Facet = strings.TrimSpace(f.Facet)
	if f.Facet == FacetAll {
		f.Facet = ""
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListResult[E any] struct {
	Items []E
	Total int
}

// Pagination is derived from a filter and a total, never stored.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

func NewPagination(f Filter, total int) Pagination {
	f = f.Normalize()
	pages := (total + f.Limit - 1) / f.Limit
	return Pagination{
		Page:    f.Page,
		Limit:   f.Limit,
		Total:   total,
		Pages:   pages,
		HasNext: f.Page*f.Limit < total,
		HasPrev: f.Page > 1,
	}
}
