package collection

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

const maxSlugProbes = 100

type Repository interface {
	GetAll(ctx context.Context, onlyActive bool) ([]Collection, error)
	GetByID(ctx context.Context, id uint) (Collection, error)
	Create(ctx context.Context, col Collection) (Collection, error)
	Update(ctx context.Context, id uint, input UpdateInput) (Collection, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Collection, error) {
	query := `
		SELECT id, title, slug, description, is_active, created_at
		FROM collections
	`
	if onlyActive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY title ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	collections := []Collection{}
	for rows.Next() {
		var col Collection
		if err := rows.Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.IsActive, &col.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		collections = append(collections, col)
	}

	return collections, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Collection, error) {
	var col Collection
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, slug, description, is_active, created_at
		FROM collections
		WHERE id = $1
	`, id).Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.IsActive, &col.CreatedAt)

	if err == sql.ErrNoRows {
		return Collection{}, ErrCollectionNotFound
	}
	return col, err
}

func (r *repository) Create(ctx context.Context, col Collection) (Collection, error) {
	log := logger.FromCtx(ctx).With(zap.String("collection_title", col.Title))

	base := utils.Slugify(col.Title)

	for n := 0; n < maxSlugProbes; n++ {
		col.Slug = utils.WithSuffix(base, n)

		err := r.db.QueryRowContext(ctx, `
			INSERT INTO collections (title, slug, description, is_active)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, col.Title, col.Slug, col.Description, col.IsActive).
			Scan(&col.ID, &col.CreatedAt)

		if err == nil {
			return col, nil
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			continue
		}

		log.Error("db: failed to insert collection", zap.Error(err))
		return Collection{}, err
	}

	return Collection{}, ErrSlugExhausted
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (Collection, error) {
	var col Collection
	err := r.db.QueryRowContext(ctx, `
		UPDATE collections
		SET title       = COALESCE($2, title),
		    description = COALESCE($3, description),
		    is_active   = COALESCE($4, is_active)
		WHERE id = $1
		RETURNING id, title, slug, description, is_active, created_at
	`, id, input.Title, input.Description, input.IsActive).
		Scan(&col.ID, &col.Title, &col.Slug, &col.Description, &col.IsActive, &col.CreatedAt)

	if err == sql.ErrNoRows {
		return Collection{}, ErrCollectionNotFound
	}
	return col, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}
	return nil
}
