package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context, productID *uint) ([]Review, error)
	GetByUserID(ctx context.Context, userID uint, productID *uint) ([]Review, error)
	GetByID(ctx context.Context, id uint) (Review, error)
	Create(ctx context.Context, rv Review) (Review, error)
	Update(ctx context.Context, id uint, input UpdateInput) (Review, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const columns = `id, product_id, user_id, rating, title, body, is_approved, created_at`

func (r *repository) queryReviews(ctx context.Context, query string, args ...any) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Body, &rv.IsApproved, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// GetAll optionally narrows to one product; a nil filter means everything.
func (r *repository) GetAll(ctx context.Context, productID *uint) ([]Review, error) {
	return r.queryReviews(ctx, `
		SELECT `+columns+` FROM product_reviews
		WHERE $1::bigint IS NULL OR product_id = $1
		ORDER BY id DESC
	`, productID)
}

func (r *repository) GetByUserID(ctx context.Context, userID uint, productID *uint) ([]Review, error) {
	return r.queryReviews(ctx, `
		SELECT `+columns+` FROM product_reviews
		WHERE user_id = $1 AND ($2::bigint IS NULL OR product_id = $2)
		ORDER BY id DESC
	`, userID, productID)
}

func (r *repository) GetByID(ctx context.Context, id uint) (Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT `+columns+` FROM product_reviews WHERE id = $1
	`, id).Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Body, &rv.IsApproved, &rv.CreatedAt)

	if err == sql.ErrNoRows {
		return Review{}, ErrReviewNotFound
	}
	return rv, err
}

func (r *repository) Create(ctx context.Context, rv Review) (Review, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_reviews (product_id, user_id, rating, title, body, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Body, rv.IsApproved).
		Scan(&rv.ID, &rv.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return Review{}, ErrProductNotFound
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		UPDATE product_reviews
		SET rating      = COALESCE($2, rating),
		    title       = COALESCE($3, title),
		    body        = COALESCE($4, body),
		    is_approved = COALESCE($5, is_approved)
		WHERE id = $1
		RETURNING `+columns+`
	`, id, input.Rating, input.Title, input.Body, input.IsApproved).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Title, &rv.Body, &rv.IsApproved, &rv.CreatedAt)

	if err == sql.ErrNoRows {
		return Review{}, ErrReviewNotFound
	}
	return rv, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
