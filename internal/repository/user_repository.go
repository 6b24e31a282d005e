// Package repository provides database access for domain entities.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/database"
	"gitlab.com/yelinaung/money-manager/internal/models"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// ErrUsernameTaken is returned when a username is already registered.
var ErrUsernameTaken = errors.New("username already exists")

// UserRepository handles user database operations.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a generated ID.
// Returns ErrUsernameTaken if the username already exists.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`, user.ID, user.Username, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, apperror.NewStorageError("failed to create user", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

// GetByUsername retrieves a user by exact username.
// Returns nil without error when no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error here
	}
	if err != nil {
		return nil, apperror.NewStorageError("failed to get user by username", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID.
// Returns nil without error when no such user exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error here
	}
	if err != nil {
		return nil, apperror.NewStorageError("failed to get user", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "SQLSTATE "+pgUniqueViolation)
}
