package collection

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrSlugExhausted      = errors.New("could not derive a unique slug")

	PgUniqueViolation = "23505"
)
