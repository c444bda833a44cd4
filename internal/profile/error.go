package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("user already has a profile")
	ErrBadMembership   = errors.New("membership_level must be bronze, silver, gold, or platinum")
	ErrBadUser         = errors.New("referenced user does not exist")

	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
