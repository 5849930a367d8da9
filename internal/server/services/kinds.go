package services

import (
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// Kind describes one content type to ContentService.
type Kind[E models.Entity[E]] struct {
	Name string
	// Folder is where uploaded images for this kind are stored.
	Folder string
	// FacetParam is the list query parameter that filters by FacetValue.
	FacetParam string

	New func() E
	// Apply copies the fields present in f onto e.
	Apply func(e E, f Fields) error
	// Validate checks the record after Apply. hasMedia is true when an
	// image file came with the request and will be uploaded.
	Validate func(e E, hasMedia bool) error
	SetMedia func(e E, url string)
	// Stamp sets identity, owner and timestamps on a new record.
	Stamp func(e E, id, authorID string, at time.Time)
	Touch func(e E, at time.Time)
}

func ExperienceKind() Kind[*models.Experience] {
	return Kind[*models.Experience]{
		Name:       "experience",
		Folder:     "travel-dashboard/experiences",
		FacetParam: "region",
		New:        func() *models.Experience { return &models.Experience{Highlights: []string{}} },
		Apply: func(e *models.Experience, f Fields) error {
			return firstErr(
				f.requiredString("destination", &e.Destination),
				f.requiredString("region", &e.Region),
				f.requiredString("title", &e.Title),
				f.requiredString("description", &e.Description),
				f.stringList("highlights", &e.Highlights),
				f.optionalURL("imageUrl", &e.ImageURL),
			)
		},
		Validate: func(e *models.Experience, _ bool) error {
			return firstErr(
				requireValue("destination", e.Destination),
				requireValue("region", e.Region),
				requireValue("title", e.Title),
				requireValue("description", e.Description),
			)
		},
		SetMedia: func(e *models.Experience, url string) { e.ImageURL = &url },
		Stamp: func(e *models.Experience, id, author string, at time.Time) {
			e.ID, e.AuthorID, e.CreatedAt, e.UpdatedAt = id, author, at, at
		},
		Touch: func(e *models.Experience, at time.Time) { e.UpdatedAt = at },
	}
}

func ItineraryKind() Kind[*models.Itinerary] {
	return Kind[*models.Itinerary]{
		Name:       "itinerary",
		Folder:     "travel-dashboard/itineraries",
		FacetParam: "region",
		New:        func() *models.Itinerary { return &models.Itinerary{} },
		Apply: func(it *models.Itinerary, f Fields) error {
			f.optionalString("description", &it.Description)
			return firstErr(
				f.requiredString("destination", &it.Destination),
				f.requiredString("region", &it.Region),
				f.requiredString("title", &it.Title),
				f.requiredString("duration", &it.Duration),
				f.optionalURL("imageUrl", &it.ImageURL),
				f.days("days", &it.Days),
			)
		},
		Validate: func(it *models.Itinerary, _ bool) error {
			err := firstErr(
				requireValue("destination", it.Destination),
				requireValue("region", it.Region),
				requireValue("title", it.Title),
				requireValue("duration", it.Duration),
			)
			if err == nil && len(it.Days) == 0 {
				err = common.NewValidationError("days", "is required")
			}
			return err
		},
		SetMedia: func(it *models.Itinerary, url string) { it.ImageURL = &url },
		Stamp: func(it *models.Itinerary, id, author string, at time.Time) {
			it.ID, it.AuthorID, it.CreatedAt, it.UpdatedAt = id, author, at, at
		},
		Touch: func(it *models.Itinerary, at time.Time) { it.UpdatedAt = at },
	}
}

func ImageKind() Kind[*models.Image] {
	return Kind[*models.Image]{
		Name:       "image",
		Folder:     "travel-dashboard/images",
		FacetParam: "region",
		New:        func() *models.Image { return &models.Image{} },
		Apply: func(img *models.Image, f Fields) error {
			err := firstErr(
				f.requiredString("destination", &img.Destination),
				f.requiredString("region", &img.Region),
				f.requiredString("caption", &img.Caption),
				f.requiredString("url", &img.URL),
			)
			if err == nil && f.Has("url") {
				err = checkURL("url", img.URL)
			}
			return err
		},
		Validate: func(img *models.Image, hasMedia bool) error {
			err := firstErr(
				requireValue("destination", img.Destination),
				requireValue("region", img.Region),
				requireValue("caption", img.Caption),
			)
			if err == nil && img.URL == "" && !hasMedia {
				err = common.NewValidationError("image", "an image file or url is required")
			}
			return err
		},
		SetMedia: func(img *models.Image, url string) { img.URL = url },
		Stamp: func(img *models.Image, id, author string, at time.Time) {
			img.ID, img.AuthorID, img.CreatedAt, img.UpdatedAt = id, author, at, at
		},
		Touch: func(img *models.Image, at time.Time) { img.UpdatedAt = at },
	}
}

// UpdateKind has no media: a file sent with an update is ignored.
func UpdateKind() Kind[*models.Update] {
	return Kind[*models.Update]{
		Name:       "update",
		FacetParam: "type",
		New:        func() *models.Update { return &models.Update{} },
		Apply: func(u *models.Update, f Fields) error {
			var typ string
			err := firstErr(
				f.requiredString("type", &typ),
				f.requiredString("title", &u.Title),
				f.requiredString("content", &u.Content),
				f.optionalURL("externalUrl", &u.ExternalURL),
			)
			if err != nil {
				return err
			}
			if f.Has("type") {
				if !models.UpdateType(typ).Valid() {
					return common.NewValidationError("type", "must be one of newsletter, travel-trend, new-experience")
				}
				u.Type = models.UpdateType(typ)
			}
			return nil
		},
		Validate: func(u *models.Update, _ bool) error {
			return firstErr(
				requireValue("type", string(u.Type)),
				requireValue("title", u.Title),
				requireValue("content", u.Content),
			)
		},
		Stamp: func(u *models.Update, id, author string, at time.Time) {
			u.ID, u.AuthorID, u.CreatedAt, u.UpdatedAt = id, author, at, at
		},
		Touch: func(u *models.Update, at time.Time) { u.UpdatedAt = at },
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
