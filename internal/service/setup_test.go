package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeclock/api/internal/repository"
	"codeclock/api/internal/security"
)

func TestSetupStatus(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewSetupService(store, cfg, zerolog.Nop())

	needsSetup, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, needsSetup)

	seedUser(t, store, "ada@example.com", "correct horse", true)

	needsSetup, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, needsSetup)
}

func TestSetupRegister_CreatesInitialAdmin(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewSetupService(store, cfg, zerolog.Nop())

	user, err := svc.Register(context.Background(), "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	assert.True(t, user.IsAdmin)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.True(t, security.VerifyPassword("correct horse", user.PasswordHash))

	stored, err := store.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
}

func TestSetupRegister_OnlyOnce(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewSetupService(store, cfg, zerolog.Nop())

	_, err := svc.Register(context.Background(), "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "eve@example.com", "sneaky sneaky", "Eve")
	assert.ErrorIs(t, err, ErrSetupComplete)
}

func TestSetupRegister_RequiresEmailAndPassword(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	store := repository.NewMemoryUserRepository()
	svc := NewSetupService(store, cfg, zerolog.Nop())

	_, err := svc.Register(context.Background(), "", "password", "")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "ada@example.com", "", "")
	assert.Error(t, err)
}
