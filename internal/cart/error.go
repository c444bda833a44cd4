package cart

import "errors"

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	ErrForbidden       = errors.New("cart does not belong to caller")

	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
