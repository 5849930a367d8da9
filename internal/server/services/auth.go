package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/credentials"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// Session is the result of a successful login or registration.
type Session struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

type AuthService struct {
	dir    credentials.Directory
	issuer *auth.Issuer
	logger logging.Logger
}

func NewAuthService(dir credentials.Directory, issuer *auth.Issuer, logger logging.Logger) *AuthService {
	return &AuthService{dir: dir, issuer: issuer, logger: logger.With("module", "auth", "policy", dir.Policy())}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}
	u, err := s.dir.Resolve(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrInvalidEmailDomain) {
			s.logger.Warn(ctx, "login rejected", "reason", err.Error())
		}
		return nil, err
	}
	return s.session(ctx, u)
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	u, err := s.dir.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return s.session(ctx, u)
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, id models.Identity) (*models.User, error) {
	return s.dir.Lookup(ctx, id.ID)
}

// Authenticate verifies a bearer token. All failures are
// common.ErrInvalidToken.
func (s *AuthService) Authenticate(token string) (models.Identity, error) {
	return s.issuer.Verify(token)
}

// Roster lists the demo accounts when the roster policy is active.
func (s *AuthService) Roster() ([]models.RosterAccount, bool) {
	r, ok := s.dir.(*credentials.Roster)
	if !ok {
		return nil, false
	}
	return r.Roster(), true
}

func (s *AuthService) session(ctx context.Context, u *models.User) (*Session, error) {
	token, err := s.issuer.Issue(u.Identity())
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, err
	}
	return &Session{Token: token, ExpiresIn: int64(s.issuer.TTL().Seconds()), User: u}, nil
}
