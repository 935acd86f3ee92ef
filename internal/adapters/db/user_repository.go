// internal/adapters/db/user_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// userRepository implements ports.UserRepository
type userRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *Database, logger *slog.Logger) ports.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "user")),
	}
}

var _ ports.UserRepository = (*userRepository)(nil)

// Save creates a new user account
func (r *userRepository) Save(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q already taken", domain.ErrConflict, u.Username)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// FindByID retrieves an active user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, role, active, created_at, updated_at, deleted_at
		FROM users WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByUsername retrieves an active user by username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, role, active, created_at, updated_at, deleted_at
		FROM users WHERE username = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	var email sql.NullString
	var deletedAt *time.Time

	err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.Role,
		&u.Active, &u.CreatedAt, &u.UpdatedAt, &deletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	u.Email = email.String
	u.DeletedAt = deletedAt
	return u, nil
}
