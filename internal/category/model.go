package category

import "time"

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	IsActive    *bool   `json:"is_active"`
	Thumbnail   *string `json:"thumbnail"`
}

// UpdateInput carries only provided fields. The slug is immutable once
// assigned, so it is not updatable here.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	Thumbnail   *string `json:"thumbnail"`
}
