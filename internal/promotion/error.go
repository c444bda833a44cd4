package promotion

import "errors"

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrDiscountRange     = errors.New("discount_percent must be between 1 and 100")
	ErrDateOrder         = errors.New("end_date must be after start_date")
)
