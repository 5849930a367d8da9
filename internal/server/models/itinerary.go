package models

import "time"

type Itinerary struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	Region      string         `json:"region"`
	Title       string         `json:"title"`
	Duration    string         `json:"duration"`
	Description *string        `json:"description"`
	ImageURL    *string        `json:"imageUrl"`
	Days        []ItineraryDay `json:"days"`
	AuthorID    string         `json:"authorId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ItineraryDay is one day of an itinerary. Days are always replaced as a
// whole list, never patched one by one.
type ItineraryDay struct {
	DayNumber  int      `json:"dayNumber"`
	Activities []string `json:"activities"`
}

func (i *Itinerary) GetID() string           { return i.ID }
func (i *Itinerary) GetAuthorID() string     { return i.AuthorID }
func (i *Itinerary) GetCreatedAt() time.Time { return i.CreatedAt }
func (i *Itinerary) FacetValue() string      { return i.Region }

func (i *Itinerary) SearchFields() []string {
	f := []string{i.Destination, i.Title}
	if i.Description != nil {
		f = append(f, *i.Description)
	}
	return f
}

func (i *Itinerary) Clone() *Itinerary {
	c := *i
	c.Description = cloneStringPtr(i.Description)
	c.ImageURL = cloneStringPtr(i.ImageURL)
	if i.Days != nil {
		c.Days = make([]ItineraryDay, len(i.Days))
		for n, d := range i.Days {
			c.Days[n] = ItineraryDay{DayNumber: d.DayNumber, Activities: cloneStrings(d.Activities)}
		}
	}
	return &c
}
