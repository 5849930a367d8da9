package models

import (
	"slices"
	"time"
)

type UpdateType string

const (
	UpdateNewsletter    UpdateType = "newsletter"
	UpdateTravelTrend   UpdateType = "travel-trend"
	UpdateNewExperience UpdateType = "new-experience"
)

var UpdateTypes = []UpdateType{UpdateNewsletter, UpdateTravelTrend, UpdateNewExperience}

func (t UpdateType) Valid() bool {
	return slices.Contains(UpdateTypes, t)
}

// Update is a newsletter item or travel news post.
type Update struct {
	ID          string     `json:"id"`
	Type        UpdateType `json:"type"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ExternalURL *string    `json:"externalUrl"`
	AuthorID    string     `json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *Update) GetID() string           { return u.ID }
func (u *Update) GetAuthorID() string     { return u.AuthorID }
func (u *Update) GetCreatedAt() time.Time { return u.CreatedAt }
func (u *Update) FacetValue() string      { return string(u.Type) }

func (u *Update) SearchFields() []string {
	return []string{u.Title, u.Content}
}

func (u *Update) Clone() *Update {
	c := *u
	c.ExternalURL = cloneStringPtr(u.ExternalURL)
	return &c
}
