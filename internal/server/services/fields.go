package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// Fields is a write payload keyed by JSON field name. A key that is present
// with an empty value is different from a missing key: missing means "leave
// unchanged", empty clears an optional field and is rejected for a required
// one. List-valued fields hold their JSON text.
type Fields map[string]string

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// FieldsFromJSON flattens a JSON object into Fields. Strings are kept as
// is, null becomes an empty value and arrays keep their raw JSON text.
// Every field is either text or a list, so numbers, booleans and objects
// are rejected.
func FieldsFromJSON(data []byte) (Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, common.NewValidationError("body", "must be a JSON object")
	}
	f := make(Fields, len(raw))
	for k, v := range raw {
		text := strings.TrimSpace(string(v))
		switch {
		case text == "null":
			f[k] = ""
		case strings.HasPrefix(text, `"`):
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, common.NewValidationError(k, "is not a valid string")
			}
			f[k] = s
		case strings.HasPrefix(text, "["):
			f[k] = text
		default:
			return nil, common.NewValidationError(k, "must be a string or an array")
		}
	}
	return f, nil
}

// FieldsFromForm takes the first value of every multipart form field.
func FieldsFromForm(values url.Values) Fields {
	f := make(Fields, len(values))
	for k, v := range values {
		if len(v) > 0 {
			f[k] = v[0]
		}
	}
	return f
}

// requiredString sets *dst when key is present. Present-but-blank is an
// error.
func (f Fields) requiredString(key string, dst *string) error {
	v, ok := f[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return common.NewValidationError(key, "must not be empty")
	}
	*dst = v
	return nil
}

// optionalString sets *dst when key is present; blank clears it.
func (f Fields) optionalString(key string, dst **string) {
	v, ok := f[key]
	if !ok {
		return
	}
	if v = strings.TrimSpace(v); v == "" {
		*dst = nil
		return
	}
	*dst = &v
}

// optionalURL is optionalString restricted to absolute http(s) URLs.
func (f Fields) optionalURL(key string, dst **string) error {
	var v *string
	if !f.Has(key) {
		return nil
	}
	f.optionalString(key, &v)
	if v != nil {
		if err := checkURL(key, *v); err != nil {
			return err
		}
	}
	*dst = v
	return nil
}

// stringList decodes a JSON array of strings, or a comma separated list
// when the value is not a JSON array (multipart forms). Blank entries are
// dropped and a blank value means an empty list.
func (f Fields) stringList(key string, dst *[]string) error {
	v, ok := f[key]
	if !ok {
		return nil
	}
	if strings.TrimSpace(v) == "" {
		*dst = []string{}
		return nil
	}
	var items []string
	if strings.HasPrefix(strings.TrimSpace(v), "[") {
		if err := json.Unmarshal([]byte(v), &items); err != nil {
			return common.NewValidationError(key, "must be a JSON array of strings")
		}
	} else {
		items = strings.Split(v, ",")
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
	return nil
}

type dayInput struct {
	Day        int      `json:"day"`
	DayNumber  int      `json:"dayNumber"`
	Activities []string `json:"activities"`
}

// days decodes [{"day":1,"activities":[...]}]. "dayNumber" is accepted in
// place of "day"; a day without a number takes its position.
func (f Fields) days(key string, dst *[]models.ItineraryDay) error {
	v, ok := f[key]
	if !ok {
		return nil
	}
	if strings.TrimSpace(v) == "" {
		return common.NewValidationError(key, "must not be empty")
	}
	var in []dayInput
	if err := json.Unmarshal([]byte(v), &in); err != nil {
		return common.NewValidationError(key, "must be a JSON array of days")
	}
	if len(in) == 0 {
		return common.NewValidationError(key, "must contain at least one day")
	}

	seen := make(map[int]bool, len(in))
	out := make([]models.ItineraryDay, 0, len(in))
	for i, d := range in {
		n := d.DayNumber
		if n == 0 {
			n = d.Day
		}
		if n == 0 {
			n = i + 1
		}
		if n < 0 {
			return common.NewValidationError(key, fmt.Sprintf("day %d has a negative number", i+1))
		}
		if seen[n] {
			return common.NewValidationError(key, fmt.Sprintf("day %d appears twice", n))
		}
		seen[n] = true

		acts := make([]string, 0, len(d.Activities))
		for _, a := range d.Activities {
			if a = strings.TrimSpace(a); a != "" {
				acts = append(acts, a)
			}
		}
		out = append(out, models.ItineraryDay{DayNumber: n, Activities: acts})
	}
	*dst = out
	return nil
}

func checkURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return common.NewValidationError(key, "must be an absolute http(s) URL")
	}
	return nil
}

func requireValue(key, v string) error {
	if strings.TrimSpace(v) == "" {
		return common.NewValidationError(key, "is required")
	}
	return nil
}
