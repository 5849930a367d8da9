package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
)

// FallbackRepository tries the durable repository first and the in-memory
// one when it fails, the same way content kinds do.
type FallbackRepository struct {
	primary   Repository
	secondary Repository
	route     store.Route
}

// NewFallbackRepository accepts a nil primary for memory-only operation.
func NewFallbackRepository(primary, secondary Repository, timeout time.Duration, logger logging.Logger) *FallbackRepository {
	if logger != nil {
		logger = logger.With("module", "store", "kind", "users")
	}
	return &FallbackRepository{
		primary:   primary,
		secondary: secondary,
		route:     store.Route{Timeout: timeout, Logger: logger, HasPrimary: primary != nil},
	}
}

func (r *FallbackRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u, _, err := store.Attempt(ctx, r.route, "create",
		func(ctx context.Context) (*models.User, error) { return r.primary.Create(ctx, user.Clone()) },
		func(ctx context.Context) (*models.User, error) { return r.secondary.Create(ctx, user.Clone()) })
	return u, err
}

func (r *FallbackRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, _, err := store.Attempt(ctx, r.route, "get_by_email",
		func(ctx context.Context) (*models.User, error) { return r.primary.GetByEmail(ctx, email) },
		func(ctx context.Context) (*models.User, error) { return r.secondary.GetByEmail(ctx, email) })
	return u, err
}

func (r *FallbackRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, _, err := store.Attempt(ctx, r.route, "get_by_id",
		func(ctx context.Context) (*models.User, error) { return r.primary.GetByID(ctx, id) },
		func(ctx context.Context) (*models.User, error) { return r.secondary.GetByID(ctx, id) })
	return u, err
}

func (r *FallbackRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	_, _, err := store.Attempt(ctx, r.route, "update_password",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, r.primary.UpdatePassword(ctx, id, passwordHash) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, r.secondary.UpdatePassword(ctx, id, passwordHash) })
	return err
}
