package order

import "time"

// Order statuses. pending -> processing -> shipped -> delivered, with
// canceled reachable from any non-terminal state.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCanceled   = "canceled"
)

// transitions maps each status to the set it may move to. delivered and
// canceled are terminal.
var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCanceled},
	StatusProcessing: {StatusShipped, StatusCanceled},
	StatusShipped:    {StatusDelivered, StatusCanceled},
	StatusDelivered:  {},
	StatusCanceled:   {},
}

func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a price snapshot: total_amount is fixed at creation from the sum
// of its line items and never recomputed.
type Order struct {
	ID              uint        `json:"id"`
	UserID          uint        `json:"user_id"`
	Status          string      `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentStatus   bool        `json:"payment_status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem.Price is copied from the product at order time; later product
// price changes never alter it. OwnerID scopes the read surface.
type OrderItem struct {
	ID          uint      `json:"id"`
	OrderID     uint      `json:"order_id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Subtotal    float64   `json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`

	OwnerID uint `json:"-"`
}

type LineInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceInput struct {
	ShippingAddress string      `json:"shipping_address" binding:"required"`
	Items           []LineInput `json:"items" binding:"required,min=1,dive"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

type PaymentInput struct {
	PaymentStatus bool `json:"payment_status"`
}
