// Package credentials resolves logins to dashboard users. A deployment picks
// exactly one policy at startup: hashed (users table with bcrypt), roster
// (two built-in demo accounts) or domain (addresses in one email domain share
// a password and are provisioned on first login).
package credentials

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/config"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
)

const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

// Directory resolves credentials and looks up accounts by id.
//
// Resolve returns common.ErrInvalidCredentials for any bad pair; the domain
// policy returns common.ErrInvalidEmailDomain for addresses it does not own.
type Directory interface {
	Resolve(ctx context.Context, email, password string) (*models.User, error)
	Lookup(ctx context.Context, id string) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Policy() string
}

type Options struct {
	Policy         string
	AdminEmail     string
	AdminPassword  string
	UserDomain     string
	SharedPassword string
}

// New builds the Directory for opts.Policy. repo is unused by the roster
// policy and may be nil there.
func New(opts Options, repo users.Repository, logger logging.Logger) (Directory, error) {
	switch opts.Policy {
	case PolicyHashed:
		return NewHashed(repo, logger), nil
	case PolicyRoster:
		return NewRoster(DemoRoster()), nil
	case PolicyDomain:
		return NewDomain(repo, opts, logger), nil
	}
	return nil, fmt.Errorf("%w: unknown auth policy %q", common.ErrConfig, opts.Policy)
}

const (
	PolicyHashed = config.PolicyHashed
	PolicyRoster = config.PolicyRoster
	PolicyDomain = config.PolicyDomain
)

func validateRegistration(name, email, password string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", common.NewValidationError("name", "is required")
	}
	email = common.NormalizeEmail(email)
	if email == "" {
		return "", "", common.NewValidationError("email", "is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "", "", common.NewValidationError("email", "is not a valid address")
	}
	if len(password) < MinPasswordLength {
		return "", "", common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return "", "", common.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}
	return name, email, nil
}
