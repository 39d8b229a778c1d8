package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"codeclock/api/internal/config"
	"codeclock/api/internal/models"
	"codeclock/api/internal/repository"
	"codeclock/api/internal/security"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken covers missing, unknown, expired and
	// already-rotated tokens alike.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService owns the session lifecycle: credential checks, access token
// issuance and the single-slot refresh token rotation protocol.
type AuthService struct {
	users CredentialStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users CredentialStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

// TokenPair is one client's session material. RefreshToken is the only copy
// of the plaintext; it must reach the client via the cookie and nothing else.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	IsAdmin      bool
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (TokenPair, error) {
	email = strings.TrimSpace(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, ErrInvalidCredentials
	}

	refreshToken, digest := security.NewRefreshToken()
	expiresAt := time.Now().Add(s.cfg.Auth.RefreshTTL)

	// Unconditional overwrite: a new login invalidates whatever refresh
	// token the user held before.
	if err := s.users.SetRefreshToken(ctx, user.ID, digest, expiresAt); err != nil {
		return TokenPair{}, err
	}

	return s.issueTokens(user, refreshToken)
}

func (s *AuthService) Refresh(ctx context.Context, presented string) (TokenPair, error) {
	if presented == "" {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	digest := security.HashRefreshToken(presented)

	user, err := s.users.FindByRefreshDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	refreshToken, newDigest := security.NewRefreshToken()
	expiresAt := time.Now().Add(s.cfg.Auth.RefreshTTL)

	// Compare-and-swap on the presented digest. If a concurrent refresh got
	// there first the slot no longer matches and this caller loses.
	if err := s.users.RotateRefreshToken(ctx, user.ID, digest, newDigest, expiresAt); err != nil {
		if errors.Is(err, repository.ErrRotationConflict) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	return s.issueTokens(user, refreshToken)
}

// Logout is idempotent and never reports whether the presented token was
// valid. An empty token is a successful no-op.
func (s *AuthService) Logout(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}

	digest := security.HashRefreshToken(presented)
	cleared, err := s.users.ClearRefreshTokenByDigest(ctx, digest)
	if err != nil {
		return err
	}
	if cleared > 0 {
		s.log.Debug().Msg("refresh token revoked on logout")
	}
	return nil
}

// ChangePassword re-verifies the current password before storing a new hash.
// The refresh slot is left alone: a password change keeps the current
// session alive.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, currentPassword string, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !security.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := security.HashPassword(newPassword, s.cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePasswordHash(ctx, user.ID, hash)
}

func (s *AuthService) issueTokens(user models.User, refreshToken string) (TokenPair, error) {
	accessToken, err := security.GenerateAccessToken(
		s.cfg.Auth.JWTSecret,
		user.ID,
		user.Email,
		user.IsAdmin,
		s.cfg.Auth.AccessTokenTTL,
	)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		IsAdmin:      user.IsAdmin,
	}, nil
}
