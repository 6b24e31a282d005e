// Package account implements registration and login rules.
package account

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
	"gitlab.com/yelinaung/money-manager/internal/repository"
)

// User-facing messages.
const (
	MsgMissingFields      = "Username and password are required"
	MsgUsernameTooLong    = "Username is too long"
	MsgPasswordTooLong    = "Password is too long"
	MsgPasswordMismatch   = "Passwords don't match"
	MsgUsernameTaken      = "Username already exists"
	MsgInvalidCredentials = "Invalid username or password"
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// Service registers and authenticates users.
type Service struct {
	users UserStore
}

// NewService creates a new Service.
func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Register creates an account. Usernames are case-sensitive and unique.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewValidationError(MsgMissingFields, nil)
	}
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, apperror.NewValidationError(MsgUsernameTooLong, nil)
	}
	if password != confirm {
		return nil, apperror.NewValidationError(MsgPasswordMismatch, nil)
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewValidationError(MsgUsernameTaken, repository.ErrUsernameTaken)
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperror.NewValidationError(MsgPasswordTooLong, err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, username, hash)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, apperror.NewValidationError(MsgUsernameTaken, err)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(user.ID)).
		Msg("User registered")

	return user, nil
}

// Login verifies credentials. Unknown users and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		logger.Log.Debug().
			Str("username_hash", logger.HashUsername(username)).
			Msg("Login rejected")
		return nil, apperror.NewAuthenticationError(MsgInvalidCredentials)
	}
	return user, nil
}
