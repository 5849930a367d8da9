package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{`"24h"`, 24 * time.Hour},
		{`"7d"`, 7 * 24 * time.Hour},
		{`"3s"`, 3 * time.Second},
		{`1000`, 1000 * time.Nanosecond},
	}
	for _, tt := range tests {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(tt.in), &d), tt.in)
		assert.Equal(t, tt.want, d.Duration, tt.in)
	}
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	for _, in := range []string{`"soon"`, `"d"`, `"1.5d"`, `true`, `{}`} {
		var d Duration
		assert.Error(t, json.Unmarshal([]byte(in), &d), in)
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}
