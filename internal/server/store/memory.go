package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// MemoryStore keeps records of one kind in process memory. Every read and
// write copies the record, so callers never share state with the store.
type MemoryStore[E models.Entity[E]] struct {
	mu    sync.RWMutex
	items []E
}

func NewMemoryStore[E models.Entity[E]](seed ...E) *MemoryStore[E] {
	m := &MemoryStore[E]{}
	for _, e := range seed {
		m.items = append(m.items, e.Clone())
	}
	return m
}

func (m *MemoryStore[E]) List(ctx context.Context, f Filter) (ListResult[E], error) {
	f = f.Normalize()
	needle := strings.ToLower(f.Search)

	m.mu.RLock()
	matched := make([]E, 0, len(m.items))
	for _, e := range m.items {
		if f.Facet != "" && e.FacetValue() != f.Facet {
			continue
		}
		if needle != "" && !containsFold(e.SearchFields(), needle) {
			continue
		}
		matched = append(matched, e.Clone())
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.GetCreatedAt().Equal(b.GetCreatedAt()) {
			return a.GetCreatedAt().After(b.GetCreatedAt())
		}
		return a.GetID() > b.GetID()
	})

	res := ListResult[E]{Total: len(matched), Items: []E{}}
	start := f.Offset()
	if start < 0 || start >= len(matched) {
		return res, nil
	}
	end := min(start+f.Limit, len(matched))
	res.Items = matched[start:end]
	return res, nil
}

func (m *MemoryStore[E]) Get(ctx context.Context, id string) (E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.items[i].Clone(), nil
	}
	var zero E
	return zero, common.ErrorNotFound
}

func (m *MemoryStore[E]) Create(ctx context.Context, e E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, e.Clone())
	return e.Clone(), nil
}

func (m *MemoryStore[E]) Update(ctx context.Context, e E) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(e.GetID())
	if i < 0 {
		var zero E
		return zero, common.ErrorNotFound
	}
	m.items[i] = e.Clone()
	return e.Clone(), nil
}

func (m *MemoryStore[E]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return common.ErrorNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// Len is used by tests and the health report.
func (m *MemoryStore[E]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// indexOf must be called with the lock held.
func (m *MemoryStore[E]) indexOf(id string) int {
	for i, e := range m.items {
		if e.GetID() == id {
			return i
		}
	}
	return -1
}

func containsFold(fields []string, lowerNeedle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerNeedle) {
			return true
		}
	}
	return false
}
