package repository

import (
	"context"
	"sync"
	"time"

	"codeclock/api/internal/models"
)

// MemoryUserRepository is an in-memory credential store with the same
// semantics as the postgres implementation, including the conditional
// rotation. Used by tests and local tooling.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryUserRepository) FindByRefreshDigest(_ context.Context, digest string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, user := range r.users {
		if user.RefreshTokenHash != nil && *user.RefreshTokenHash == digest &&
			user.RefreshTokenExpiresAt != nil && user.RefreshTokenExpiresAt.After(now) {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *MemoryUserRepository) CountUsers(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r *MemoryUserRepository) SetRefreshToken(_ context.Context, id string, digest string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.RefreshTokenHash = &digest
	user.RefreshTokenExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *MemoryUserRepository) RotateRefreshToken(_ context.Context, id string, oldDigest string, newDigest string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.RefreshTokenHash == nil || *user.RefreshTokenHash != oldDigest {
		return ErrRotationConflict
	}
	user.RefreshTokenHash = &newDigest
	user.RefreshTokenExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *MemoryUserRepository) ClearRefreshTokenByDigest(_ context.Context, digest string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cleared int64
	for id, user := range r.users {
		if user.RefreshTokenHash != nil && *user.RefreshTokenHash == digest {
			user.RefreshTokenHash = nil
			user.RefreshTokenExpiresAt = nil
			user.UpdatedAt = time.Now()
			r.users[id] = user
			cleared++
		}
	}
	return cleared, nil
}

func (r *MemoryUserRepository) UpdatePasswordHash(_ context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *MemoryUserRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *MemoryUserRepository) PurgeExpiredRefreshTokens(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var purged int64
	for id, user := range r.users {
		if user.RefreshTokenExpiresAt != nil && !user.RefreshTokenExpiresAt.After(now) {
			user.RefreshTokenHash = nil
			user.RefreshTokenExpiresAt = nil
			user.UpdatedAt = now
			r.users[id] = user
			purged++
		}
	}
	return purged, nil
}
