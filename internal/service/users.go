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
	"codeclock/api/internal/repository"
	"codeclock/api/internal/security"
)

var ErrEmailTaken = errors.New("email already registered")

// UserService covers admin-side account management: creating accounts after
// bootstrap, listing them and toggling the admin flag.
type UserService struct {
	users CredentialStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUserService(users CredentialStore, cfg *config.AppConfig, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

func (s *UserService) Create(ctx context.Context, email string, password string, name string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
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
		IsAdmin:      false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// SetAdmin takes effect immediately on admin-gated routes; access tokens
// issued before the change keep their stale claim until expiry.
func (s *UserService) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	if err := s.users.SetAdmin(ctx, id, isAdmin); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Bool("is_admin", isAdmin).Msg("admin flag updated")
	return nil
}
