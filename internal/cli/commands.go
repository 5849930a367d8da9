package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/auth"
	"github.com/dmitrijs2005/travelboard/internal/server/credentials"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/users"
	"github.com/dmitrijs2005/travelboard/internal/server/seed"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/google/uuid"
)

const secretBytes = 32

func (a *App) secret() error {
	s, err := common.MakeRandHexString(secretBytes)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, s)
	return nil
}

func (a *App) migrate(ctx context.Context, db *sql.DB) error {
	if err := a.rm.RunMigrations(ctx, db); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "migrations applied")
	return nil
}

type account struct {
	id, name, email, password string
	role                      models.Role
}

// seedAccounts lists the roster logins plus, when configured, the domain
// policy administrator and one demo user of the domain.
func (a *App) seedAccounts() []account {
	var out []account
	for _, r := range credentials.DemoRoster() {
		out = append(out, account{r.ID, r.Name, r.Email, r.Password, r.Role})
	}
	c := a.config
	if c.AdminEmail != "" && c.AdminPassword != "" {
		out = append(out, account{uuid.NewString(), "Admin", c.AdminEmail, c.AdminPassword, models.RoleAdmin})
	}
	if c.UserDomain != "" && c.SharedPassword != "" {
		email := "demo@" + c.UserDomain
		out = append(out, account{uuid.NewString(), common.DisplayNameFromEmail(email), email, c.SharedPassword, models.RoleUser})
	}
	return out
}

// seed migrates, then inserts whatever demo accounts and sample records are
// missing. Running it twice changes nothing.
func (a *App) seed(ctx context.Context, db *sql.DB) error {
	if err := a.rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	repo := a.rm.Users(db)
	created, skipped := 0, 0
	for _, acc := range a.seedAccounts() {
		ok, err := a.ensureUser(ctx, repo, acc)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", acc.email, err)
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}
	fmt.Fprintf(a.out, "users: %d created, %d already present\n", created, skipped)

	set := seed.Sample(a.now().UTC())
	steps := []struct {
		name string
		run  func() (int, error)
	}{
		{"experiences", func() (int, error) { return insertMissing(ctx, a.rm.Experiences(db), set.Experiences) }},
		{"itineraries", func() (int, error) { return insertMissing(ctx, a.rm.Itineraries(db), set.Itineraries) }},
		{"images", func() (int, error) { return insertMissing(ctx, a.rm.Images(db), set.Images) }},
		{"updates", func() (int, error) { return insertMissing(ctx, a.rm.Updates(db), set.Updates) }},
	}
	for _, s := range steps {
		n, err := s.run()
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
		fmt.Fprintf(a.out, "%s: %d created\n", s.name, n)
	}
	a.logger.Info(ctx, "seed complete", "users", created)
	return nil
}

func (a *App) ensureUser(ctx context.Context, repo users.Repository, acc account) (bool, error) {
	email := common.NormalizeEmail(acc.email)
	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(acc.password)
	if err != nil {
		return false, err
	}
	_, err = repo.Create(ctx, &models.User{
		ID:           acc.id,
		Name:         acc.name,
		Email:        email,
		PasswordHash: hash,
		Role:         acc.role,
		CreatedAt:    a.now().UTC(),
	})
	if errors.Is(err, common.ErrEmailInUse) {
		return false, nil
	}
	return err == nil, err
}

func insertMissing[E models.Record](ctx context.Context, st store.Store[E], items []E) (int, error) {
	n := 0
	for _, e := range items {
		_, err := st.Get(ctx, e.GetID())
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return n, err
		}
		if _, err := st.Create(ctx, e); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// passwd prompts twice for a new password and stores its hash.
func (a *App) passwd(ctx context.Context, db *sql.DB, email string) error {
	var err error
	if email == "" {
		if email, err = GetSimpleText(a.reader, "User email", a.out); err != nil {
			return err
		}
	}

	repo := a.rm.Users(db)
	u, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("lookup %s: %w", email, err)
	}

	pw, err := GetPassword(a.out, "New password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	again, err := GetPassword(a.out, "Repeat password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(pw, again) {
		return common.NewValidationError("password", "passwords do not match")
	}
	if len(pw) < credentials.MinPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", credentials.MinPasswordLength))
	}
	if len(pw) > credentials.MaxPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", credentials.MaxPasswordLength))
	}

	hash, err := auth.HashPassword(string(pw))
	if err != nil {
		return err
	}
	if err := repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "password updated for %s\n", u.Email)
	a.logger.Info(ctx, "password reset", "user_id", u.ID)
	return nil
}
