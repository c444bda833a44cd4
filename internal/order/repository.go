package order

import (
	"context"
	"database/sql"
	"fmt"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Place(ctx context.Context, userID uint, shippingAddress string, lines []LineInput) (Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	GetByUserID(ctx context.Context, userID uint) ([]Order, error)
	GetByID(ctx context.Context, id uint) (Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (Order, error)
	UpdatePayment(ctx context.Context, id uint, paid bool) (Order, error)

	GetAllItems(ctx context.Context) ([]OrderItem, error)
	GetItemsByUserID(ctx context.Context, userID uint) ([]OrderItem, error)
	GetItemByID(ctx context.Context, id uint) (OrderItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Place snapshots each product's current price into its order item and sums
// the total, all inside one transaction so an order can never land without
// its items.
func (r *repository) Place(ctx context.Context, userID uint, shippingAddress string, lines []LineInput) (Order, error) {
	log := logger.FromCtx(ctx).With(zap.Uint("user_id", userID))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	type snapshot struct {
		productID uint
		name      string
		price     float64
		quantity  int
	}

	snapshots := make([]snapshot, 0, len(lines))
	var total float64
	for _, line := range lines {
		var s snapshot
		s.productID = line.ProductID
		s.quantity = line.Quantity

		err := tx.QueryRowContext(ctx, `
			SELECT name, price FROM products WHERE id = $1
		`, line.ProductID).Scan(&s.name, &s.price)
		if err == sql.ErrNoRows {
			return Order{}, ErrProductNotFound
		}
		if err != nil {
			return Order{}, err
		}

		total += s.price * float64(s.quantity)
		snapshots = append(snapshots, s)
	}

	o := Order{
		UserID:          userID,
		Status:          StatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, total_amount, shipping_address, payment_status)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, created_at
	`, o.UserID, o.Status, o.TotalAmount, o.ShippingAddress).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return Order{}, err
	}

	o.Items = make([]OrderItem, 0, len(snapshots))
	for _, s := range snapshots {
		it := OrderItem{
			OrderID:     o.ID,
			ProductID:   s.productID,
			ProductName: s.name,
			Quantity:    s.quantity,
			Price:       s.price,
			Subtotal:    s.price * float64(s.quantity),
			OwnerID:     userID,
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, it.OrderID, it.ProductID, it.Quantity, it.Price).
			Scan(&it.ID, &it.CreatedAt)
		if err != nil {
			return Order{}, err
		}

		o.Items = append(o.Items, it)
	}

	if err := tx.Commit(); err != nil {
		log.Error("db: failed to commit order", zap.Error(err))
		return Order{}, err
	}
	return o, nil
}

const itemColumns = `
	oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price,
	oi.price * oi.quantity, oi.created_at, o.user_id
`

const itemJoins = `
	JOIN products p ON p.id = oi.product_id
	JOIN orders o ON o.id = oi.order_id
`

func scanItem(row interface{ Scan(...any) error }) (OrderItem, error) {
	var it OrderItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
		&it.Price, &it.Subtotal, &it.CreatedAt, &it.OwnerID)
	return it, err
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.ShippingAddress, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *repository) itemsForOrder(ctx context.Context, orderID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items oi `+itemJoins+` WHERE oi.order_id = $1 ORDER BY oi.id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetAll(ctx context.Context) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, payment_status, created_at
		FROM orders ORDER BY id DESC
	`)
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, payment_status, created_at
		FROM orders WHERE user_id = $1 ORDER BY id DESC
	`, userID)
}

func (r *repository) GetByID(ctx context.Context, id uint) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, payment_status, created_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.ShippingAddress, &o.PaymentStatus, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}

	o.Items, err = r.itemsForOrder(ctx, o.ID)
	return o, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status string) (Order, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return Order{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) UpdatePayment(ctx context.Context, id uint, paid bool) (Order, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status = $2 WHERE id = $1`, id, paid)
	if err != nil {
		return Order{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrOrderNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetAllItems(ctx context.Context) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items oi `+itemJoins+` ORDER BY oi.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetItemsByUserID(ctx context.Context, userID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items oi `+itemJoins+` WHERE o.user_id = $1 ORDER BY oi.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetItemByID(ctx context.Context, id uint) (OrderItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM order_items oi `+itemJoins+` WHERE oi.id = $1`, id))

	if err == sql.ErrNoRows {
		return OrderItem{}, ErrItemNotFound
	}
	return it, err
}
