package promotion

import "time"

// Promotion is a time-bounded percentage discount that products may point at.
type Promotion struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent int       `json:"discount_percent"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateInput struct {
	Name            string    `json:"name" binding:"required"`
	DiscountPercent int       `json:"discount_percent" binding:"required"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
	IsActive        *bool     `json:"is_active"`
}

type UpdateInput struct {
	Name            *string    `json:"name"`
	DiscountPercent *int       `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsActive        *bool      `json:"is_active"`
}
