package user

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrUserNotFound - no user with the given id exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUser - creation/state invariant violation.
	ErrInvalidUser = errors.New("invalid user")
)

// NewUserNotFoundError creates a user-not-found error (with stack).
func NewUserNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: ErrUserNotFound,
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidUserError creates a generic invariant-violation error.
func NewInvalidUserError(message string) error {
	return &userDomainError{
		sentinel: ErrInvalidUser,
		message:  message,
		stack:    shared.CaptureStack(3),
	}
}

type userDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string { return e.message }

func (e *userDomainError) Unwrap() error { return e.sentinel }

func (e *userDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
