package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/credentials"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, dir credentials.Directory, ttl time.Duration) *AuthService {
	t.Helper()
	iss, err := auth.NewIssuer("test-secret", ttl)
	require.NoError(t, err)
	return NewAuthService(dir, iss, logging.NewNopLogger())
}

func TestAuthService_RosterLogin(t *testing.T) {
	svc := newAuthService(t, credentials.NewRoster(credentials.DemoRoster()), 24*time.Hour)
	ctx := context.Background()

	s, err := svc.Login(ctx, "admin@dashboard.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, int64(86400), s.ExpiresIn)
	assert.Equal(t, "admin-001", s.User.ID)

	id, err := svc.Authenticate(s.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "admin-001", Email: "admin@dashboard.com", Role: models.RoleAdmin}, id)

	u, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Admin User", u.Name)

	list, ok := svc.Roster()
	assert.True(t, ok)
	assert.Len(t, list, 2)

	_, err = svc.Register(ctx, "N", "n@example.com", "password")
	assert.ErrorIs(t, err, common.ErrRegistrationDisabled)
}

func TestAuthService_LoginErrors(t *testing.T) {
	svc := newAuthService(t, credentials.NewRoster(credentials.DemoRoster()), time.Hour)

	_, err := svc.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Login(context.Background(), "admin@dashboard.com", "nope")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthService_HashedRegister(t *testing.T) {
	dir := credentials.NewHashed(users.NewMemoryRepository(), logging.NewNopLogger())
	svc := newAuthService(t, dir, 7*24*time.Hour)
	ctx := context.Background()

	s, err := svc.Register(ctx, "Bob", "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, s.User.Role)
	assert.Equal(t, int64(7*24*3600), s.ExpiresIn)

	_, ok := svc.Roster()
	assert.False(t, ok)

	s2, err := svc.Login(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, s2.User.ID)
}
