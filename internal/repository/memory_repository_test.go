package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeclock/api/internal/models"
)

func TestRotateRefreshToken_SingleWinner(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "u1@example.com"}))
	require.NoError(t, repo.SetRefreshToken(ctx, "u1", "digest-a", time.Now().Add(time.Hour)))

	// First rotation wins.
	require.NoError(t, repo.RotateRefreshToken(ctx, "u1", "digest-a", "digest-b", time.Now().Add(time.Hour)))

	// Second rotation against the stale digest loses.
	err := repo.RotateRefreshToken(ctx, "u1", "digest-a", "digest-c", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrRotationConflict)

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.RefreshTokenHash)
	assert.Equal(t, "digest-b", *user.RefreshTokenHash)
}

func TestFindByRefreshDigest_ExpiryFiltered(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "u1@example.com"}))
	require.NoError(t, repo.SetRefreshToken(ctx, "u1", "digest-a", time.Now().Add(-time.Minute)))

	_, err := repo.FindByRefreshDigest(ctx, "digest-a")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, repo.SetRefreshToken(ctx, "u1", "digest-a", time.Now().Add(time.Minute)))

	user, err := repo.FindByRefreshDigest(ctx, "digest-a")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestClearRefreshTokenByDigest(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "u1@example.com"}))
	require.NoError(t, repo.SetRefreshToken(ctx, "u1", "digest-a", time.Now().Add(time.Hour)))

	cleared, err := repo.ClearRefreshTokenByDigest(ctx, "unknown")
	require.NoError(t, err)
	assert.Zero(t, cleared)

	cleared, err = repo.ClearRefreshTokenByDigest(ctx, "digest-a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, user.RefreshTokenHash)
	assert.Nil(t, user.RefreshTokenExpiresAt)
}

func TestPurgeExpiredRefreshTokens(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.User{ID: "expired", Email: "a@example.com"}))
	require.NoError(t, repo.Create(ctx, models.User{ID: "live", Email: "b@example.com"}))
	require.NoError(t, repo.SetRefreshToken(ctx, "expired", "digest-a", time.Now().Add(-time.Hour)))
	require.NoError(t, repo.SetRefreshToken(ctx, "live", "digest-b", time.Now().Add(time.Hour)))

	purged, err := repo.PurgeExpiredRefreshTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	gone, err := repo.GetByID(ctx, "expired")
	require.NoError(t, err)
	assert.Nil(t, gone.RefreshTokenHash)

	kept, err := repo.GetByID(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, kept.RefreshTokenHash)
	assert.Equal(t, "digest-b", *kept.RefreshTokenHash)
}
