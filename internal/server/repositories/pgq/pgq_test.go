package pgq

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	cols := []string{"destination", "title"}

	clause, args := Where(store.Filter{}, "region", cols)
	assert.Empty(t, clause)
	assert.Empty(t, args)

	clause, args = Where(store.Filter{Facet: "South"}, "region", cols)
	assert.Equal(t, " WHERE region = $1", clause)
	assert.Equal(t, []any{"South"}, args)

	clause, args = Where(store.Filter{Facet: "South", Search: "50%_off"}, "region", cols)
	assert.Equal(t, " WHERE region = $1 AND (destination ILIKE $2 OR title ILIKE $2)", clause)
	assert.Equal(t, []any{"South", `%50\%\_off%`}, args)

	clause, args = Where(store.Filter{Search: "goa"}, "type", cols)
	assert.Equal(t, " WHERE (destination ILIKE $1 OR title ILIKE $1)", clause)
	assert.Equal(t, []any{"%goa%"}, args)
}

func TestPage(t *testing.T) {
	f := store.Filter{Page: 3, Limit: 20}.Normalize()
	clause, args := Page(f, []any{"South"})
	assert.Equal(t, " ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"South", 20, 40}, args)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", Placeholders(1, 3))
	assert.Equal(t, "$4", Placeholders(4, 1))
}

func TestJSONList(t *testing.T) {
	b, err := JSONList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	got, err := ParseJSONList([]byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = ParseJSONList(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	_, err = ParseJSONList([]byte(`{"a":1}`))
	assert.Error(t, err)
}

func TestNullStrings(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullString(nil))
	v := "x"
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, NullString(&v))
	assert.Nil(t, StringPtr(sql.NullString{}))
	assert.Equal(t, "x", *StringPtr(sql.NullString{String: "x", Valid: true}))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("plain")))
}
