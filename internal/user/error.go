package user

import "errors"

var (
	// -- Authentication --
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")

	// -- Validation & Input --
	ErrConflictingRoles = errors.New("at most one role flag may be set")
	ErrSuperuserFlags   = errors.New("superuser must have is_staff and is_superuser set")

	// -- Resource State --
	ErrUserNotFound = errors.New("user not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
