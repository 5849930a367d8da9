package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  ops@example.com \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "User email", &out)
	if err != nil || got != "ops@example.com" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "User email") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEmptyInput(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	_, err := GetSimpleText(in, "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret!"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out, "New password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", string(pw))
	assert.True(t, strings.HasPrefix(out.String(), "New password: "))
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out, "Password: ")
	if err == nil {
		t.Fatal("expected error")
	}
}
