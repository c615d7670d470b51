package user

import (
	"context"
	"strings"
	"sync"
)

// Repository defines the interface for user data persistence.
type Repository interface {
	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*User, error)

	// Create creates a new user. Returns ErrUserExists on an ID or email clash.
	Create(ctx context.Context, user *User) error

	// Update replaces an existing user. Returns ErrUserNotFound if it does
	// not exist.
	Update(ctx context.Context, user *User) error

	// Delete deletes a user. Deleting a missing user is not an error.
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps profiles in process memory, indexed by ID and by
// lower-cased email.
type InMemoryRepository struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string
}

// NewInMemoryRepository creates a new in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailTaken reports whether email belongs to a user other than id.
func (r *InMemoryRepository) emailTaken(email, id string) bool {
	if email == "" {
		return false
	}
	owner, ok := r.byEmail[emailKey(email)]
	return ok && owner != id
}

// Get retrieves a user by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	return copyUser(user), nil
}

// Create creates a new user.
func (r *InMemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok || r.emailTaken(user.Email, user.ID) {
		return ErrUserExists
	}

	r.users[user.ID] = copyUser(user)
	if user.Email != "" {
		r.byEmail[emailKey(user.Email)] = user.ID
	}
	return nil
}

// Update updates an existing user.
func (r *InMemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return ErrUserExists
	}

	delete(r.byEmail, emailKey(old.Email))
	r.users[user.ID] = copyUser(user)
	if user.Email != "" {
		r.byEmail[emailKey(user.Email)] = user.ID
	}
	return nil
}

// Delete deletes a user.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		delete(r.byEmail, emailKey(u.Email))
		delete(r.users, id)
	}
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
