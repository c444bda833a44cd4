package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrProductNotFound = errors.New("product not found")
	ErrRatingRange     = errors.New("rating must be between 1 and 5")

	PgForeignKeyViolation = "23503"
)
