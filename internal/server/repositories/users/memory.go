package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/server/models"
)

// MemoryRepository keeps users in process memory. The username check and
// insert happen under one write lock.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	byUserName map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]*models.User),
		byUserName: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserName[user.UserName]; ok {
		return common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return common.ErrorAlreadyExists
	}

	u := *user
	r.byID[u.ID] = &u
	r.byUserName[u.UserName] = u.ID
	return nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}
