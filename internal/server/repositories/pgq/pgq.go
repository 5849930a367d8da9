// Package pgq holds the small SQL-building and scanning helpers shared by
// the Postgres repositories.
package pgq

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Where renders the WHERE clause for a list filter. facetCol is compared
// with "=", searchCols with ILIKE. Placeholders start at $1.
func Where(f store.Filter, facetCol string, searchCols []string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Facet != "" {
		args = append(args, f.Facet)
		conds = append(conds, fmt.Sprintf("%s = $%d", facetCol, len(args)))
	}
	if f.Search != "" && len(searchCols) > 0 {
		args = append(args, "%"+EscapeLike(f.Search)+"%")
		n := len(args)
		ors := make([]string, len(searchCols))
		for i, c := range searchCols {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Page appends ordering and LIMIT/OFFSET placeholders after args.
func Page(f store.Filter, args []any) (string, []any) {
	n := len(args)
	args = append(args, f.Limit, f.Offset())
	return fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// Placeholders returns "$from, $from+1, ..." for n values.
func Placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// JSONList encodes a string list for a JSONB column. nil becomes [].
func JSONList(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

func ParseJSONList(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func NullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
