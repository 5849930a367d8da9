package credentials

import (
	"context"
	"crypto/subtle"
	"slices"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// DemoRoster is the built-in account list used by the roster policy.
func DemoRoster() []models.RosterAccount {
	return []models.RosterAccount{
		{ID: "admin-001", Email: "admin@dashboard.com", Password: "admin123", Name: "Admin User", Role: models.RoleAdmin},
		{ID: "user-001", Email: "user@dashboard.com", Password: "user123", Name: "Regular User", Role: models.RoleUser},
	}
}

// Roster accepts only a fixed set of accounts and never writes anything.
type Roster struct {
	accounts []models.RosterAccount
}

func NewRoster(accounts []models.RosterAccount) *Roster {
	return &Roster{accounts: slices.Clone(accounts)}
}

func (r *Roster) Policy() string { return PolicyRoster }

func (r *Roster) Resolve(ctx context.Context, email, password string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	for _, a := range r.accounts {
		if a.Email != email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) != 1 {
			return nil, common.ErrInvalidCredentials
		}
		return toUser(a), nil
	}
	return nil, common.ErrInvalidCredentials
}

func (r *Roster) Lookup(ctx context.Context, id string) (*models.User, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return toUser(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *Roster) Register(context.Context, string, string, string) (*models.User, error) {
	return nil, common.ErrRegistrationDisabled
}

// Roster lists the demo accounts, passwords included.
func (r *Roster) Roster() []models.RosterAccount {
	return slices.Clone(r.accounts)
}

func toUser(a models.RosterAccount) *models.User {
	return &models.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
