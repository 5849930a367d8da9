// Package images persists gallery images in Postgres.
package images

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

const columns = `id, destination, region, caption, url, author_id, created_at, updated_at`

var searchColumns = []string{"destination", "caption"}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ store.Store[*models.Image] = (*PostgresRepository)(nil)

func (r *PostgresRepository) List(ctx context.Context, f store.Filter) (store.ListResult[*models.Image], error) {
	f = f.Normalize()
	res := store.ListResult[*models.Image]{Items: []*models.Image{}}

	where, args := pgq.Where(f, "region", searchColumns)
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images"+where, args...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}

	page, args := pgq.Page(f, args)
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM images"+where+page, args...)
	if err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.Destination, &img.Region, &img.Caption, &img.URL,
			&img.AuthorID, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return res, fmt.Errorf("db error: %w", err)
		}
		res.Items = append(res.Items, &img)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Image, error) {
	var img models.Image
	err := r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM images WHERE id = $1", id).
		Scan(&img.ID, &img.Destination, &img.Region, &img.Caption, &img.URL, &img.AuthorID, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &img, nil
}

func (r *PostgresRepository) Create(ctx context.Context, img *models.Image) (*models.Image, error) {
	query :=
		`INSERT INTO images (id, destination, region, caption, url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `
	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.Destination, img.Region, img.Caption, img.URL, img.AuthorID, img.CreatedAt, img.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return img, nil
}

func (r *PostgresRepository) Update(ctx context.Context, img *models.Image) (*models.Image, error) {
	query :=
		`UPDATE images
		 SET destination = $2, region = $3, caption = $4, url = $5, updated_at = $6
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		img.ID, img.Destination, img.Region, img.Caption, img.URL, img.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return nil, common.ErrorNotFound
	}
	return img, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = $1", id)
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
