package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blaemart-be/internal/logger"
	"blaemart-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// maxSlugProbes bounds the -1, -2, ... collision suffix search.
const maxSlugProbes = 100

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uint) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, id uint, input UpdateInput) (Category, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, description, is_active, thumbnail, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.Thumbnail, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, is_active, thumbnail, created_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.Thumbnail, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

// Create inserts with a slug derived from the name, probing -1, -2, ...
// suffixes until the unique constraint stops complaining.
func (r *repository) Create(ctx context.Context, c Category) (Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("category_name", c.Name))

	base := utils.Slugify(c.Name)

	for n := 0; n < maxSlugProbes; n++ {
		c.Slug = utils.WithSuffix(base, n)

		err := r.db.QueryRowContext(ctx, `
			INSERT INTO categories (name, slug, description, is_active, thumbnail)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, c.Name, c.Slug, c.Description, c.IsActive, c.Thumbnail).
			Scan(&c.ID, &c.CreatedAt)

		if err == nil {
			return c, nil
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			continue
		}

		log.Error("db: failed to insert category", zap.Error(err))
		return Category{}, err
	}

	return Category{}, ErrSlugExhausted
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    is_active   = COALESCE($4, is_active),
		    thumbnail   = COALESCE($5, thumbnail)
		WHERE id = $1
		RETURNING id, name, slug, description, is_active, thumbnail, created_at
	`, id, input.Name, input.Description, input.IsActive, input.Thumbnail).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.Thumbnail, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return Category{}, ErrCategoryNotFound
	}
	return c, err
}

// Delete is referential-protected: the FK from products blocks deletion of a
// category that still has products.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return ErrCategoryInUse
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
