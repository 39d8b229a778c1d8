package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"codeclock/api/internal/config"
	"codeclock/api/internal/ids"
	"codeclock/api/internal/models"
	"codeclock/api/internal/security"
)

// ErrSetupComplete means the one-time bootstrap registration was attempted
// after a user already exists.
var ErrSetupComplete = errors.New("setup already completed")

// SetupService handles the first-run bootstrap: reporting whether the system
// still needs its initial administrator, and creating that account exactly
// once.
type SetupService struct {
	users CredentialStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewSetupService(users CredentialStore, cfg *config.AppConfig, log zerolog.Logger) *SetupService {
	return &SetupService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

// Status reads the user count fresh on every call. The transition from
// "needs setup" to "initialized" is one-way, so there is nothing to cache.
func (s *SetupService) Status(ctx context.Context) (bool, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *SetupService) Register(ctx context.Context, email string, password string, name string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password required")
	}

	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrSetupComplete
	}

	hash, err := security.HashPassword(password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("initial admin created, setup complete")

	return user, nil
}
