package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Cart, error)
	GetByID(ctx context.Context, id uint) (Cart, error)
	GetByUserID(ctx context.Context, userID uint) (Cart, error)
	CreateForUser(ctx context.Context, userID uint) (Cart, error)

	GetItems(ctx context.Context, cartID uint) ([]CartItem, error)
	GetAllItems(ctx context.Context) ([]CartItem, error)
	GetItemByID(ctx context.Context, id uint) (CartItem, error)
	FindItem(ctx context.Context, cartID, productID uint) (CartItem, error)
	InsertItem(ctx context.Context, cartID, productID uint, quantity int) (CartItem, error)
	UpdateItemQuantity(ctx context.Context, id uint, quantity int) (CartItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// itemColumns joins products for the current name/price; subtotal is derived
// in the query so the row arrives ready to serve.
const itemColumns = `
	ci.id, ci.cart_id, ci.product_id, p.name, p.price, ci.quantity,
	p.price * ci.quantity, ci.created_at, c.user_id
`

const itemJoins = `
	JOIN products p ON p.id = ci.product_id
	JOIN carts c ON c.id = ci.cart_id
`

func scanItem(row interface{ Scan(...any) error }) (CartItem, error) {
	var it CartItem
	err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.ProductName, &it.Price,
		&it.Quantity, &it.Subtotal, &it.CreatedAt, &it.OwnerID)
	return it, err
}

func (r *repository) GetAll(ctx context.Context) ([]Cart, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, created_at FROM carts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	carts := []Cart{}
	for rows.Next() {
		var c Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		carts = append(carts, c)
	}

	return carts, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return Cart{}, ErrCartNotFound
	}
	return c, err
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return Cart{}, ErrCartNotFound
	}
	return c, err
}

func (r *repository) CreateForUser(ctx context.Context, userID uint) (Cart, error) {
	var c Cart
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id) VALUES ($1) RETURNING id, user_id, created_at
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			// lost a creation race, the cart exists now
			return r.GetByUserID(ctx, userID)
		}
		return Cart{}, err
	}
	return c, nil
}

func (r *repository) GetItems(ctx context.Context, cartID uint) ([]CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items ci `+itemJoins+` WHERE ci.cart_id = $1 ORDER BY ci.id ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetAllItems(ctx context.Context) ([]CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items ci `+itemJoins+` ORDER BY ci.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetItemByID(ctx context.Context, id uint) (CartItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items ci `+itemJoins+` WHERE ci.id = $1`, id))

	if err == sql.ErrNoRows {
		return CartItem{}, ErrItemNotFound
	}
	return it, err
}

func (r *repository) FindItem(ctx context.Context, cartID, productID uint) (CartItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM cart_items ci `+itemJoins+` WHERE ci.cart_id = $1 AND ci.product_id = $2`,
		cartID, productID))

	if err == sql.ErrNoRows {
		return CartItem{}, ErrItemNotFound
	}
	return it, err
}

func (r *repository) InsertItem(ctx context.Context, cartID, productID uint, quantity int) (CartItem, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, cartID, productID, quantity).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return CartItem{}, ErrProductNotFound
		}
		return CartItem{}, err
	}

	return r.GetItemByID(ctx, id)
}

func (r *repository) UpdateItemQuantity(ctx context.Context, id uint, quantity int) (CartItem, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return CartItem{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return CartItem{}, err
	}
	if affected == 0 {
		return CartItem{}, ErrItemNotFound
	}

	return r.GetItemByID(ctx, id)
}

func (r *repository) DeleteItem(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
