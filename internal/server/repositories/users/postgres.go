package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/pgq"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, password_hash, role)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role)).Scan(&user.CreatedAt)

	if err != nil {
		if pgq.IsUniqueViolation(err) {
			return nil, common.ErrEmailInUse
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
