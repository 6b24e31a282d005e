// Package apperror defines the application's error taxonomy and how each
// category maps onto an HTTP response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// AuthenticationError represents bad credentials on login.
	AuthenticationError
	// ValidationError represents rejected user input.
	ValidationError
	// StorageError represents a connectivity or query failure against the store.
	StorageError
	// ExternalServiceError represents a failure from the generative-AI provider.
	ExternalServiceError
	// InternalError represents a generic internal failure.
	InternalError
)

// String returns a short label for logs.
func (t ErrorType) String() string {
	switch t {
	case AuthenticationError:
		return "authentication"
	case ValidationError:
		return "validation"
	case StorageError:
		return "storage"
	case ExternalServiceError:
		return "external_service"
	case InternalError:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError is an error with a category and a user-facing message.
// Err carries the underlying cause and is never shown to users.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthenticationError:
		return http.StatusUnauthorized
	case ValidationError:
		return http.StatusBadRequest
	case StorageError:
		return http.StatusServiceUnavailable
	case ExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new AppError.
func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(message string) *AppError {
	return New(AuthenticationError, message, nil)
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string, underlying error) *AppError {
	return New(ValidationError, message, underlying)
}

// NewStorageError creates a StorageError.
func NewStorageError(message string, underlying error) *AppError {
	return New(StorageError, message, underlying)
}

// NewExternalServiceError creates an ExternalServiceError.
func NewExternalServiceError(message string, underlying error) *AppError {
	return New(ExternalServiceError, message, underlying)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, underlying error) *AppError {
	return New(InternalError, message, underlying)
}

// As extracts the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// TypeOf returns the type of the first *AppError in err's chain, or UnknownError.
func TypeOf(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return UnknownError
}

// IsAuthentication checks if an error is an AuthenticationError.
func IsAuthentication(err error) bool { return TypeOf(err) == AuthenticationError }

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool { return TypeOf(err) == ValidationError }

// IsStorage checks if an error is a StorageError.
func IsStorage(err error) bool { return TypeOf(err) == StorageError }

// IsExternalService checks if an error is an ExternalServiceError.
func IsExternalService(err error) bool { return TypeOf(err) == ExternalServiceError }

// UserMessage returns the message safe to show to an end user.
func UserMessage(err error) string {
	appErr, ok := As(err)
	if !ok {
		return "Something went wrong. Please try again."
	}
	if appErr.Type == StorageError {
		return "Service temporarily unavailable. Please try again later."
	}
	return appErr.Message
}
