package models

import "time"

type Experience struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Region      string    `json:"region"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Highlights  []string  `json:"highlights"`
	ImageURL    *string   `json:"imageUrl"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Experience) GetID() string           { return e.ID }
func (e *Experience) GetAuthorID() string     { return e.AuthorID }
func (e *Experience) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *Experience) FacetValue() string      { return e.Region }

func (e *Experience) SearchFields() []string {
	return []string{e.Destination, e.Title, e.Description}
}

func (e *Experience) Clone() *Experience {
	c := *e
	c.Highlights = cloneStrings(e.Highlights)
	c.ImageURL = cloneStringPtr(e.ImageURL)
	return &c
}
