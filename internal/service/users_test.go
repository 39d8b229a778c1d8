package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeclock/api/internal/repository"
)

func TestUserCreate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewUserService(store, cfg, zerolog.Nop())

	user, err := svc.Create(context.Background(), "bob@example.com", "a decent pass", "Bob")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin, "admin-created accounts start without admin rights")

	_, err = svc.Create(context.Background(), "bob@example.com", "another pass", "Bob II")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserSetAdmin(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewUserService(store, cfg, zerolog.Nop())

	user, err := svc.Create(context.Background(), "bob@example.com", "a decent pass", "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.SetAdmin(context.Background(), user.ID, true))

	stored, err := store.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	err = svc.SetAdmin(context.Background(), "missing-id", true)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserList(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewUserService(store, cfg, zerolog.Nop())

	_, err := svc.Create(context.Background(), "bob@example.com", "a decent pass", "Bob")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "carol@example.com", "another pass", "Carol")
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
