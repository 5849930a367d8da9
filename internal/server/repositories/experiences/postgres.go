// Package experiences persists curated travel experiences in Postgres.
package experiences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/pgq"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
)

const columns = `id, destination, region, title, description, highlights, image_url, author_id, created_at, updated_at`

var searchColumns = []string{"destination", "title", "description"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ store.Store[*models.Experience] = (*PostgresRepository)(nil)

func (r *PostgresRepository) List(ctx context.Context, f store.Filter) (store.ListResult[*models.Experience], error) {
	f = f.Normalize()
	res := store.ListResult[*models.Experience]{Items: []*models.Experience{}}

	where, args := pgq.Where(f, "region", searchColumns)
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM experiences"+where, args...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}

	page, args := pgq.Page(f, args)
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM experiences"+where+page, args...)
	if err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return res, err
		}
		res.Items = append(res.Items, e)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Experience, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM experiences WHERE id = $1", id)
	e, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	highlights, err := pgq.JSONList(e.Highlights)
	if err != nil {
		return nil, fmt.Errorf("encode highlights: %w", err)
	}

	query :=
		`INSERT INTO experiences (id, destination, region, title, description, highlights, image_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.Destination, e.Region, e.Title, e.Description, highlights,
		pgq.NullString(e.ImageURL), e.AuthorID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Experience) (*models.Experience, error) {
	highlights, err := pgq.JSONList(e.Highlights)
	if err != nil {
		return nil, fmt.Errorf("encode highlights: %w", err)
	}

	query :=
		`UPDATE experiences
		 SET destination = $2, region = $3, title = $4, description = $5, highlights = $6, image_url = $7, updated_at = $8
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.Destination, e.Region, e.Title, e.Description, highlights,
		pgq.NullString(e.ImageURL), e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM experiences WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Experience, error) {
	var (
		e          models.Experience
		highlights []byte
		imageURL   sql.NullString
	)
	err := s.Scan(&e.ID, &e.Destination, &e.Region, &e.Title, &e.Description, &highlights,
		&imageURL, &e.AuthorID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if e.Highlights, err = pgq.ParseJSONList(highlights); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	e.ImageURL = pgq.StringPtr(imageURL)
	return &e, nil
}
