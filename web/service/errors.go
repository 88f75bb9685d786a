package service

import "errors"

// Failure kinds raised by the services. The controller layer maps each
// kind to exactly one HTTP status.
var (
	// ErrTodoNotFound also covers "exists but not yours": owner-scoped
	// lookups deliberately do not reveal whether a foreign todo exists.
	ErrTodoNotFound = errors.New("todo not found")

	ErrUserNotFound = errors.New("user not found")

	ErrAccessDenied = errors.New("access denied")

	ErrDuplicateUsername = errors.New("username is already taken")

	// ErrInvalidCredentials is intentionally generic so failed logins do
	// not reveal whether the username exists.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
