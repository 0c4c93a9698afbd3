package store

import (
	"context"
	"fmt"
	"sync"

	"burger-palace-api/models"

	"github.com/google/uuid"
)

type InMemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailTaken
	}
	// Generate UUID if not already set
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	r.byEmail[user.Email] = &stored
	r.byID[user.ID] = &stored
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyUser(r.byEmail[email])
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyUser(r.byID[id])
}

func copyUser(u *models.User) (*models.User, error) {
	if u == nil {
		return nil, fmt.Errorf("user: %w", models.ErrNotFound)
	}
	c := *u
	return &c, nil
}
