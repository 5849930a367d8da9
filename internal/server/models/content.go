// Package models holds the travelboard domain types: users and the four
// content kinds served by the dashboard.
package models

import "time"

// Record is what the storage layer needs to know about any content kind.
type Record interface {
	GetID() string
	GetAuthorID() string
	GetCreatedAt() time.Time
	// FacetValue is the value the list facet filter (region or type)
	// matches against.
	FacetValue() string
	// SearchFields are matched case-insensitively by the list search.
	SearchFields() []string
}

// Entity is a Record that can deep-copy itself.
type Entity[E any] interface {
	Record
	Clone() E
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
