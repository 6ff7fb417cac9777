package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/99minutos/service-catalog/internal/core/domain"
)

// UserRepository implements ports.UserRepository over a map.
type UserRepository struct {
	mu      sync.RWMutex
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]string

	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

// FindByID returns the user without its password hash.
func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (r *UserRepository) Exists(_ context.Context, id string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	r.seq++
	stored := *user
	stored.ID = fmt.Sprintf("usr_%06d", r.seq)
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

// Delete removes a user; used to simulate accounts removed after a token
// was issued.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}
