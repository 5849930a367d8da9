package credentials

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
)

// Domain admits one reserved admin address plus any address in UserDomain.
// Unknown domain users are created on their first login with the shared
// password; every later login is checked against the stored hash.
type Domain struct {
	repo           users.Repository
	adminEmail     string
	adminPassword  string
	suffix         string
	sharedPassword string
	logger         logging.Logger
	now            func() time.Time
}

func NewDomain(repo users.Repository, opts Options, logger logging.Logger) *Domain {
	return &Domain{
		repo:           repo,
		adminEmail:     common.NormalizeEmail(opts.AdminEmail),
		adminPassword:  opts.AdminPassword,
		suffix:         "@" + strings.ToLower(strings.TrimPrefix(strings.TrimSpace(opts.UserDomain), "@")),
		sharedPassword: opts.SharedPassword,
		logger:         logger.With("module", "credentials", "policy", PolicyDomain),
		now:            time.Now,
	}
}

func (d *Domain) Policy() string { return PolicyDomain }

func (d *Domain) Resolve(ctx context.Context, email, password string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	switch {
	case email == d.adminEmail:
		return d.resolveProvisioned(ctx, email, password, d.adminPassword, models.RoleAdmin)
	case d.inDomain(email):
		return d.resolveProvisioned(ctx, email, password, d.sharedPassword, models.RoleUser)
	}
	auth.BurnPasswordCheck(password)
	return nil, common.ErrInvalidEmailDomain
}

// resolveProvisioned checks an existing record's hash, or creates the record
// when the supplied password equals the convention password.
func (d *Domain) resolveProvisioned(ctx context.Context, email, password, convention string, role models.Role) (*models.User, error) {
	u, err := d.repo.GetByEmail(ctx, email)
	if err == nil {
		if !auth.CheckPassword(u.PasswordHash, password) {
			return nil, common.ErrInvalidCredentials
		}
		return u, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if convention == "" || subtle.ConstantTimeCompare([]byte(convention), []byte(password)) != 1 {
		return nil, common.ErrInvalidCredentials
	}

	u, err = createUser(ctx, d.repo, common.DisplayNameFromEmail(email), email, password, role, d.now())
	if errors.Is(err, common.ErrEmailInUse) {
		// Lost a race with a concurrent first login.
		return d.resolveProvisioned(ctx, email, password, "", role)
	}
	if err != nil {
		return nil, err
	}
	d.logger.Info(ctx, "account provisioned", "user_id", u.ID, "role", string(role))
	return u, nil
}

func (d *Domain) Lookup(ctx context.Context, id string) (*models.User, error) {
	return d.repo.GetByID(ctx, id)
}

// Register creates a user-role account for an address in the user domain.
// The reserved admin address cannot be registered.
func (d *Domain) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name, email, err := validateRegistration(name, email, password)
	if err != nil {
		return nil, err
	}
	if !d.inDomain(email) {
		return nil, common.ErrInvalidEmailDomain
	}
	return createUser(ctx, d.repo, name, email, password, models.RoleUser, d.now())
}

func (d *Domain) inDomain(email string) bool {
	return email != d.adminEmail && len(email) > len(d.suffix) && strings.HasSuffix(email, d.suffix)
}
