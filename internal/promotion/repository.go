package promotion

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Promotion, error)
	GetByID(ctx context.Context, id uint) (Promotion, error)
	Create(ctx context.Context, p Promotion) (Promotion, error)
	Update(ctx context.Context, id uint, input UpdateInput) (Promotion, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Promotion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, discount_percent, start_date, end_date, is_active, created_at
		FROM promotions
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	promotions := []Promotion{}
	for rows.Next() {
		var p Promotion
		if err := rows.Scan(&p.ID, &p.Name, &p.DiscountPercent, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		promotions = append(promotions, p)
	}

	return promotions, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Promotion, error) {
	var p Promotion
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, discount_percent, start_date, end_date, is_active, created_at
		FROM promotions
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.DiscountPercent, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return Promotion{}, ErrPromotionNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Promotion) (Promotion, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO promotions (name, discount_percent, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, p.Name, p.DiscountPercent, p.StartDate, p.EndDate, p.IsActive).
		Scan(&p.ID, &p.CreatedAt)

	return p, err
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (Promotion, error) {
	var p Promotion
	err := r.db.QueryRowContext(ctx, `
		UPDATE promotions
		SET name             = COALESCE($2, name),
		    discount_percent = COALESCE($3, discount_percent),
		    start_date       = COALESCE($4, start_date),
		    end_date         = COALESCE($5, end_date),
		    is_active        = COALESCE($6, is_active)
		WHERE id = $1
		RETURNING id, name, discount_percent, start_date, end_date, is_active, created_at
	`, id, input.Name, input.DiscountPercent, input.StartDate, input.EndDate, input.IsActive).
		Scan(&p.ID, &p.Name, &p.DiscountPercent, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return Promotion{}, ErrPromotionNotFound
	}
	return p, err
}

// Delete relies on the products FK being ON DELETE SET NULL, so products that
// pointed at the promotion simply lose it.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
