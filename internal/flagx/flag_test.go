package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", ":5000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", ":5000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-notvalue"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "multiple allowed flags kept in order",
			args:         []string{"-p", "domain", "-c", "conf.json", "--other", "x"},
			allowedFlags: []string{"-c", "-p"},
			want:         []string{"-p", "domain", "-c", "conf.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigPath([]string{"-config", "/path/long.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1", "-y", "2"}))
	assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitList(" http://a, ,http://b "))
	assert.Nil(t, SplitList(""))
}

func TestPositional(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{nil, []string{}},
		{[]string{"seed"}, []string{"seed"}},
		{[]string{"-d", "postgres://x", "passwd", "pat@example.com"}, []string{"passwd", "pat@example.com"}},
		{[]string{"passwd", "-d=postgres://x", "pat@example.com"}, []string{"passwd", "pat@example.com"}},
		{[]string{"migrate", "-c", "conf.json"}, []string{"migrate"}},
		{[]string{"passwd", "--", "-odd@example.com"}, []string{"passwd", "-odd@example.com"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Positional(tt.args), "%v", tt.args)
	}
}
