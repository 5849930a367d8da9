package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestIdentity_CanModify(t *testing.T) {
	owner := Identity{ID: "u-1", Role: RoleUser}
	other := Identity{ID: "u-2", Role: RoleUser}
	admin := Identity{ID: "a-1", Role: RoleAdmin}
	anon := Identity{}

	assert.True(t, owner.CanModify("u-1"))
	assert.False(t, other.CanModify("u-1"))
	assert.True(t, admin.CanModify("u-1"))
	assert.False(t, anon.CanModify(""))
}

func TestUser_IdentityAndClone(t *testing.T) {
	u := &User{ID: "u-1", Name: "Alice", Email: "alice@immerseindia.com", PasswordHash: "h", Role: RoleUser}
	assert.Equal(t, Identity{ID: "u-1", Email: "alice@immerseindia.com", Role: RoleUser}, u.Identity())

	c := u.Clone()
	c.Name = "Changed"
	assert.Equal(t, "Alice", u.Name)
}

func TestExperience_CloneIsDeep(t *testing.T) {
	e := &Experience{ID: "1", Highlights: []string{"a", "b"}, ImageURL: strPtr("http://x")}
	c := e.Clone()
	c.Highlights[0] = "z"
	*c.ImageURL = "http://y"

	assert.Equal(t, "a", e.Highlights[0])
	assert.Equal(t, "http://x", *e.ImageURL)
}

func TestItinerary_CloneIsDeep(t *testing.T) {
	it := &Itinerary{ID: "1", Days: []ItineraryDay{{DayNumber: 1, Activities: []string{"arrive"}}}}
	c := it.Clone()
	c.Days[0].Activities[0] = "leave"
	c.Days = append(c.Days, ItineraryDay{DayNumber: 2})

	assert.Len(t, it.Days, 1)
	assert.Equal(t, "arrive", it.Days[0].Activities[0])
}

func TestItinerary_SearchFieldsIncludeDescription(t *testing.T) {
	it := &Itinerary{Destination: "Kerala", Title: "Backwaters"}
	assert.Equal(t, []string{"Kerala", "Backwaters"}, it.SearchFields())

	it.Description = strPtr("houseboats")
	assert.Contains(t, it.SearchFields(), "houseboats")
}

func TestRecordAccessors(t *testing.T) {
	now := time.Now()
	recs := []Record{
		&Experience{ID: "e", AuthorID: "a", CreatedAt: now, Region: "South"},
		&Itinerary{ID: "i", AuthorID: "a", CreatedAt: now, Region: "South"},
		&Image{ID: "m", AuthorID: "a", CreatedAt: now, Region: "South"},
		&Update{ID: "u", AuthorID: "a", CreatedAt: now, Type: UpdateNewsletter},
	}
	for _, r := range recs {
		assert.Equal(t, "a", r.GetAuthorID())
		assert.Equal(t, now, r.GetCreatedAt())
		assert.NotEmpty(t, r.GetID())
	}
	assert.Equal(t, "newsletter", recs[3].FacetValue())
	assert.Equal(t, "South", recs[0].FacetValue())
}

func TestUpdateType_Valid(t *testing.T) {
	assert.True(t, UpdateTravelTrend.Valid())
	assert.False(t, UpdateType("blog").Valid())
}
