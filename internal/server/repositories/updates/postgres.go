// Package updates persists newsletter and travel news posts in Postgres.
package updates

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

const columns = `id, type, title, content, external_url, author_id, created_at, updated_at`

var searchColumns = []string{"title", "content"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ store.Store[*models.Update] = (*PostgresRepository)(nil)

func (r *PostgresRepository) List(ctx context.Context, f store.Filter) (store.ListResult[*models.Update], error) {
	f = f.Normalize()
	res := store.ListResult[*models.Update]{Items: []*models.Update{}}

	where, args := pgq.Where(f, "type", searchColumns)
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM updates"+where, args...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}

	page, args := pgq.Page(f, args)
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM updates"+where+page, args...)
	if err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return res, fmt.Errorf("db error: %w", err)
		}
		res.Items = append(res.Items, u)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Update, error) {
	u, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM updates WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u *models.Update) (*models.Update, error) {
	query :=
		`INSERT INTO updates (id, type, title, content, external_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `
	_, err := r.db.ExecContext(ctx, query,
		u.ID, string(u.Type), u.Title, u.Content, pgq.NullString(u.ExternalURL), u.AuthorID, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, u *models.Update) (*models.Update, error) {
	query :=
		`UPDATE updates
		 SET type = $2, title = $3, content = $4, external_url = $5, updated_at = $6
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		u.ID, string(u.Type), u.Title, u.Content, pgq.NullString(u.ExternalURL), u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM updates WHERE id = $1", id)
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

func scan(s scanner) (*models.Update, error) {
	var (
		u      models.Update
		typ    string
		extURL sql.NullString
	)
	if err := s.Scan(&u.ID, &typ, &u.Title, &u.Content, &extURL, &u.AuthorID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Type = models.UpdateType(typ)
	u.ExternalURL = pgq.StringPtr(extURL)
	return &u, nil
}
