package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
)

// MemoryRepository keeps accounts for the lifetime of the process.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*models.User{}, byEmail: map[string]string{}}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrEmailInUse
	}
	u := user.Clone()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u.Clone(), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}
