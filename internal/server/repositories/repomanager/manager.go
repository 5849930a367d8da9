package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
)

// RepositoryManager vends the durable repositories and owns the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Experiences(db dbx.DBTX) store.Store[*models.Experience]
	Images(db dbx.DBTX) store.Store[*models.Image]
	Updates(db dbx.DBTX) store.Store[*models.Update]
	// Itineraries needs the pool itself because it opens transactions.
	Itineraries(db *sql.DB) store.Store[*models.Itinerary]
}
