package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coachup_api/internal/common"
	"coachup_api/internal/domain/model"
)

// InMemoryUserRepository mirrors the Postgres repository's semantics,
// including unique-constraint conflicts, for tests and local runs without
// a database.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User // keyed by ID
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*model.User)}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}

	stored := *user
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = &stored

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Email == email })
}

func (r *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Username == username })
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.ID == id })
}

func (r *InMemoryUserRepository) findBy(match func(*model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryUserRepository) UpdateRole(_ context.Context, id, role string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	copied := *user
	return &copied, nil
}

func (r *InMemoryUserRepository) List(_ context.Context, limit, offset int) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return []*model.User{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
