package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeclock/api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrRotationConflict means the conditional rotation matched no row: the
	// presented digest was already replaced or cleared by a concurrent call.
	ErrRotationConflict = errors.New("refresh token rotation conflict")
)

const userColumns = `
	id, email, name, password_hash, is_admin,
	refresh_token_hash, refresh_token_expires_at, created_at, updated_at
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.RefreshTokenHash,
		&user.RefreshTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, email, name, password_hash, is_admin, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsAdmin,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindByRefreshDigest matches only tokens whose expiry is still in the
// future; an expired slot is indistinguishable from an absent one.
func (r *UserRepository) FindByRefreshDigest(ctx context.Context, digest string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE refresh_token_hash = $1 AND refresh_token_expires_at > NOW()
	`
	return scanUser(r.pool.QueryRow(ctx, query, digest))
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetRefreshToken unconditionally overwrites the user's refresh slot.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id string, digest string, expiresAt time.Time) error {
	const query = `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, digest, expiresAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RotateRefreshToken replaces the refresh slot only if it still holds
// oldDigest. Concurrent rotations racing on the same token leave exactly one
// winner; losers get ErrRotationConflict.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, id string, oldDigest string, newDigest string, expiresAt time.Time) error {
	const query = `
		UPDATE users
		SET refresh_token_hash = $3, refresh_token_expires_at = $4, updated_at = NOW()
		WHERE id = $1 AND refresh_token_hash = $2
	`
	cmd, err := r.pool.Exec(ctx, query, id, oldDigest, newDigest, expiresAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRotationConflict
	}
	return nil
}

// ClearRefreshTokenByDigest nulls the slot of whichever user holds the
// digest. Clearing an unknown digest is not an error; the count tells the
// caller whether anything changed.
func (r *UserRepository) ClearRefreshTokenByDigest(ctx context.Context, digest string) (int64, error) {
	const query = `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expires_at = NULL, updated_at = NOW()
		WHERE refresh_token_hash = $1
	`
	cmd, err := r.pool.Exec(ctx, query, digest)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id string, hash []byte) error {
	const query = `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	const query = `
		UPDATE users SET is_admin = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, isAdmin)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PurgeExpiredRefreshTokens clears every slot whose expiry has elapsed.
// Expired tokens are already unusable; this keeps dead digests out of the
// table.
func (r *UserRepository) PurgeExpiredRefreshTokens(ctx context.Context) (int64, error) {
	const query = `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expires_at = NULL, updated_at = NOW()
		WHERE refresh_token_expires_at IS NOT NULL AND refresh_token_expires_at <= NOW()
	`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
