package cart

import "time"

// Cart is one-per-user, created lazily on first access. Totals are computed
// at read time from the current product prices, never stored.
type Cart struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CartItem carries the owning cart's user id so handlers can scope access
// without a second lookup.
type CartItem struct {
	ID          uint      `json:"id"`
	CartID      uint      `json:"cart_id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`

	OwnerID uint `json:"-"`
}

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}
