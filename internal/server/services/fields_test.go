package services

import (
	"net/url"
	"testing"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromJSON(t *testing.T) {
	f, err := FieldsFromJSON([]byte(`{"title":"Goa","imageUrl":null,"highlights":["a","b"],"days":[{"day":1}]}`))
	require.NoError(t, err)

	assert.Equal(t, "Goa", f["title"])
	assert.True(t, f.Has("imageUrl"))
	assert.Equal(t, "", f["imageUrl"])
	assert.Equal(t, `["a","b"]`, f["highlights"])
	assert.Equal(t, `[{"day":1}]`, f["days"])
	assert.False(t, f.Has("region"))

	_, err = FieldsFromJSON([]byte(`[1,2]`))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestFieldsFromJSON_RejectsNonStringScalars(t *testing.T) {
	for _, body := range []string{`{"title":123}`, `{"region":true}`, `{"caption":{"text":"x"}}`} {
		_, err := FieldsFromJSON([]byte(body))
		assert.ErrorIs(t, err, common.ErrValidation, body)
	}
}

func TestFieldsFromForm(t *testing.T) {
	f := FieldsFromForm(url.Values{"title": {"A", "B"}, "empty": {""}, "none": {}})
	assert.Equal(t, Fields{"title": "A", "empty": ""}, f)
}

func TestStringList(t *testing.T) {
	var got []string
	require.NoError(t, Fields{"h": ""}.stringList("h", &got))
	assert.Equal(t, []string{}, got)

	require.NoError(t, Fields{}.stringList("h", &got))
	assert.Equal(t, []string{}, got, "absent key leaves value alone")

	assert.ErrorIs(t, Fields{"h": `[1,2]`}.stringList("h", &got), common.ErrValidation)

	require.NoError(t, Fields{"h": "Backwaters, houseboat ,,spice farm"}.stringList("h", &got))
	assert.Equal(t, []string{"Backwaters", "houseboat", "spice farm"}, got)

	require.NoError(t, Fields{"h": "single"}.stringList("h", &got))
	assert.Equal(t, []string{"single"}, got)
}

func TestDays_DefaultsNumbersToPosition(t *testing.T) {
	var days []models.ItineraryDay
	err := Fields{"days": `[{"activities":["a"]},{"activities":[" b ",""]}]`}.days("days", &days)
	require.NoError(t, err)
	assert.Equal(t, []models.ItineraryDay{
		{DayNumber: 1, Activities: []string{"a"}},
		{DayNumber: 2, Activities: []string{"b"}},
	}, days)
}
