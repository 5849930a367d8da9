// Package itineraries persists day-by-day itineraries in Postgres. An
// itinerary row and its itinerary_days rows are always written together in
// one transaction.
package itineraries

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

const columns = `id, destination, region, title, duration, description, image_url, author_id, created_at, updated_at`

var searchColumns = []string{"destination", "title", "description"}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ store.Store[*models.Itinerary] = (*PostgresRepository)(nil)

func (r *PostgresRepository) List(ctx context.Context, f store.Filter) (store.ListResult[*models.Itinerary], error) {
	f = f.Normalize()
	res := store.ListResult[*models.Itinerary]{Items: []*models.Itinerary{}}

	where, args := pgq.Where(f, "region", searchColumns)
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM itineraries"+where, args...).Scan(&res.Total); err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}

	page, args := pgq.Page(f, args)
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM itineraries"+where+page, args...)
	if err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			rows.Close()
			return res, fmt.Errorf("db error: %w", err)
		}
		res.Items = append(res.Items, it)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return res, fmt.Errorf("db error: %w", err)
	}

	if err := loadDays(ctx, r.db, res.Items); err != nil {
		return res, err
	}
	return res, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Itinerary, error) {
	it, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM itineraries WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := loadDays(ctx, r.db, []*models.Itinerary{it}); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *PostgresRepository) Create(ctx context.Context, it *models.Itinerary) (*models.Itinerary, error) {
	query :=
		`INSERT INTO itineraries (id, destination, region, title, duration, description, image_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, query,
			it.ID, it.Destination, it.Region, it.Title, it.Duration, pgq.NullString(it.Description),
			pgq.NullString(it.ImageURL), it.AuthorID, it.CreatedAt, it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return insertDays(ctx, tx, it.ID, it.Days)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Update rewrites the itinerary row and replaces its day list as a whole.
func (r *PostgresRepository) Update(ctx context.Context, it *models.Itinerary) (*models.Itinerary, error) {
	query :=
		`UPDATE itineraries
		 SET destination = $2, region = $3, title = $4, duration = $5, description = $6, image_url = $7, updated_at = $8
		 WHERE id = $1
		 `
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query,
			it.ID, it.Destination, it.Region, it.Title, it.Duration, pgq.NullString(it.Description),
			pgq.NullString(it.ImageURL), it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("db error: %w", err)
		} else if n == 0 {
			return common.ErrorNotFound
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM itinerary_days WHERE itinerary_id = $1", it.ID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return insertDays(ctx, tx, it.ID, it.Days)
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Delete removes the itinerary; its days go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM itineraries WHERE id = $1", id)
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

func insertDays(ctx context.Context, tx dbx.DBTX, id string, days []models.ItineraryDay) error {
	for _, d := range days {
		activities, err := pgq.JSONList(d.Activities)
		if err != nil {
			return fmt.Errorf("encode activities: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO itinerary_days (itinerary_id, day_number, activities) VALUES ($1, $2, $3)",
			id, d.DayNumber, activities)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func loadDays(ctx context.Context, db dbx.DBTX, items []*models.Itinerary) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[string]*models.Itinerary, len(items))
	args := make([]any, len(items))
	for i, it := range items {
		it.Days = []models.ItineraryDay{}
		byID[it.ID] = it
		args[i] = it.ID
	}

	query := "SELECT itinerary_id, day_number, activities FROM itinerary_days WHERE itinerary_id IN (" +
		pgq.Placeholders(1, len(args)) + ") ORDER BY itinerary_id, day_number"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  string
			d   models.ItineraryDay
			raw []byte
		)
		if err := rows.Scan(&id, &d.DayNumber, &raw); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if d.Activities, err = pgq.ParseJSONList(raw); err != nil {
			return fmt.Errorf("decode activities: %w", err)
		}
		if it, ok := byID[id]; ok {
			it.Days = append(it.Days, d)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Itinerary, error) {
	var (
		it          models.Itinerary
		description sql.NullString
		imageURL    sql.NullString
	)
	err := s.Scan(&it.ID, &it.Destination, &it.Region, &it.Title, &it.Duration, &description,
		&imageURL, &it.AuthorID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.Description = pgq.StringPtr(description)
	it.ImageURL = pgq.StringPtr(imageURL)
	return &it, nil
}
