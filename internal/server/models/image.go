package models

import "time"

type Image struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Region      string    `json:"region"`
	Caption     string    `json:"caption"`
	URL         string    `json:"url"`
	AuthorID    string    `json:"authorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i *Image) GetID() string           { return i.ID }
func (i *Image) GetAuthorID() string     { return i.AuthorID }
func (i *Image) GetCreatedAt() time.Time { return i.CreatedAt }
func (i *Image) FacetValue() string      { return i.Region }

func (i *Image) SearchFields() []string {
	return []string{i.Destination, i.Caption}
}

func (i *Image) Clone() *Image {
	c := *i
	return &c
}
