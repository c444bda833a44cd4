package review

import "time"

// Review is tied to its author; creation forces the author to the caller and
// approves the review immediately.
type Review struct {
	ID         uint      `json:"id"`
	ProductID  uint      `json:"product_id"`
	UserID     uint      `json:"user_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// UpdateInput.IsApproved is honored for staff callers only; the service drops
// it for everyone else.
type UpdateInput struct {
	Rating     *int    `json:"rating"`
	Title      *string `json:"title"`
	Body       *string `json:"body"`
	IsApproved *bool   `json:"is_approved"`
}
