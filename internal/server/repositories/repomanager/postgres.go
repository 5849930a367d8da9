// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/server/migrations"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/experiences"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/images"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/itineraries"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/updates"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DriverName is the database/sql driver registered by pgx/stdlib.
const DriverName = "pgx"

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Experiences(db dbx.DBTX) store.Store[*models.Experience] {
	return experiences.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Images(db dbx.DBTX) store.Store[*models.Image] {
	return images.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Updates(db dbx.DBTX) store.Store[*models.Update] {
	return updates.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Itineraries(db *sql.DB) store.Store[*models.Itinerary] {
	return itineraries.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(DriverName); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Open opens a pgx-backed pool for dsn. It does not connect; callers ping.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
