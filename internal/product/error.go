package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrImageNotFound    = errors.New("product image not found")
	ErrSKUExists        = errors.New("sku already exists")
	ErrPriceInvalid     = errors.New("price must be greater than zero")
	ErrInventoryInvalid = errors.New("inventory cannot be negative")
	ErrBadReference     = errors.New("referenced category, collection, or promotion does not exist")
	ErrProductInUse     = errors.New("product is referenced by existing orders")
	ErrSlugExhausted    = errors.New("could not derive a unique slug")

	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
