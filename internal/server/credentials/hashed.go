package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/google/uuid"
)

// Hashed checks passwords against bcrypt hashes in the users repository.
type Hashed struct {
	repo   users.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewHashed(repo users.Repository, logger logging.Logger) *Hashed {
	return &Hashed{repo: repo, logger: logger.With("module", "credentials", "policy", PolicyHashed), now: time.Now}
}

func (h *Hashed) Policy() string { return PolicyHashed }

func (h *Hashed) Resolve(ctx context.Context, email, password string) (*models.User, error) {
	u, err := h.repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}

func (h *Hashed) Lookup(ctx context.Context, id string) (*models.User, error) {
	return h.repo.GetByID(ctx, id)
}

// Register creates a user-role account. Roles are never taken from input.
func (h *Hashed) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name, email, err := validateRegistration(name, email, password)
	if err != nil {
		return nil, err
	}
	return createUser(ctx, h.repo, name, email, password, models.RoleUser, h.now())
}

func createUser(ctx context.Context, repo users.Repository, name, email, password string, role models.Role, now time.Time) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now.UTC(),
	})
}
