package users

import (
	"context"

	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// Repository stores dashboard accounts. Emails are unique; Create returns
// common.ErrEmailInUse on a duplicate and lookups return
// common.ErrorNotFound on a miss.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
