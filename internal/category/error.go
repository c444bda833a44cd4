package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products and cannot be deleted")
	ErrSlugExhausted    = errors.New("could not derive a unique slug")

	// -- Constants (External Systems) --
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
