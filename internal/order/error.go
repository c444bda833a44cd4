package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemNotFound    = errors.New("order item not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrBadStatus       = errors.New("unknown order status")
	ErrBadTransition   = errors.New("status transition not allowed")
)
