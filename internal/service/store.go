package service

import (
	"context"
	"time"

	"codeclock/api/internal/models"
)

// CredentialStore is the persistence contract the auth services run against.
// *repository.UserRepository is the production implementation.
type CredentialStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByRefreshDigest(ctx context.Context, digest string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
	SetRefreshToken(ctx context.Context, id string, digest string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, id string, oldDigest string, newDigest string, expiresAt time.Time) error
	ClearRefreshTokenByDigest(ctx context.Context, digest string) (int64, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	PurgeExpiredRefreshTokens(ctx context.Context) (int64, error)
}
