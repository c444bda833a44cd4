package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blaemart-be/internal/logger"
	"blaemart-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const maxSlugProbes = 100

type Repository interface {
	Search(ctx context.Context, term string) ([]ListItem, error)
	GetByID(ctx context.Context, id uint) (Product, error)
	GetDetail(ctx context.Context, id uint) (Detail, error)
	Create(ctx context.Context, p Product, collectionIDs []uint) (Product, error)
	Update(ctx context.Context, id uint, input UpdateInput) (Product, error)
	Delete(ctx context.Context, id uint) error

	GetImages(ctx context.Context, productID uint) ([]Image, error)
	GetImageByID(ctx context.Context, id uint) (Image, error)
	AddImage(ctx context.Context, img Image) (Image, error)
	UpdateImage(ctx context.Context, id uint, input ImageUpdateInput) (Image, error)
	DeleteImage(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Search matches the term case-insensitively against name, description,
// category name, and sku. An empty term returns everything.
func (r *repository) Search(ctx context.Context, term string) ([]ListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.slug, p.price,
		       (SELECT pi.image FROM product_images pi
		        WHERE pi.product_id = p.id
		        ORDER BY pi.is_primary DESC, pi.id ASC
		        LIMIT 1) AS image,
		       p.inventory > 0 AS in_stock
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE $1 = ''
		   OR p.name ILIKE '%' || $1 || '%'
		   OR p.description ILIKE '%' || $1 || '%'
		   OR c.name ILIKE '%' || $1 || '%'
		   OR p.sku ILIKE '%' || $1 || '%'
		ORDER BY p.id ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	items := []ListItem{}
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.Price, &it.Image, &it.InStock); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, price, inventory, sku, category_id, promotion_id, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Inventory, &p.SKU, &p.CategoryID, &p.PromotionID, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) GetDetail(ctx context.Context, id uint) (Detail, error) {
	var d Detail
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.inventory, p.sku,
		       p.category_id, p.promotion_id, p.created_at,
		       c.name, pr.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN promotions pr ON pr.id = p.promotion_id
		WHERE p.id = $1
	`, id).Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &d.Price, &d.Inventory, &d.SKU,
		&d.CategoryID, &d.PromotionID, &d.CreatedAt,
		&d.CategoryName, &d.PromotionName)

	if err == sql.ErrNoRows {
		return Detail{}, ErrProductNotFound
	}
	if err != nil {
		return Detail{}, err
	}

	if d.Images, err = r.GetImages(ctx, id); err != nil {
		return Detail{}, err
	}

	collRows, err := r.db.QueryContext(ctx, `
		SELECT collection_id FROM product_collections WHERE product_id = $1 ORDER BY collection_id
	`, id)
	if err != nil {
		return Detail{}, fmt.Errorf("query failed: %w", err)
	}
	defer collRows.Close()

	d.CollectionIDs = []uint{}
	for collRows.Next() {
		var cid uint
		if err := collRows.Scan(&cid); err != nil {
			return Detail{}, fmt.Errorf("scan failed: %w", err)
		}
		d.CollectionIDs = append(d.CollectionIDs, cid)
	}

	return d, collRows.Err()
}

func classifyInsertErr(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case PgUniqueViolation:
		if strings.Contains(pqErr.Constraint, "sku") {
			return ErrSKUExists
		}
		return err
	case PgForeignKeyViolation:
		return ErrBadReference
	}
	return err
}

// Create inserts the product and its collection links in one transaction,
// probing slug suffixes on collision. SKU collisions abort immediately.
func (r *repository) Create(ctx context.Context, p Product, collectionIDs []uint) (Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("product_name", p.Name))

	base := utils.Slugify(p.Name)

	for n := 0; n < maxSlugProbes; n++ {
		p.Slug = utils.WithSuffix(base, n)

		created, err := r.createOnce(ctx, p, collectionIDs)
		if err == nil {
			return created, nil
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation &&
			strings.Contains(pqErr.Constraint, "slug") {
			continue
		}

		classified := classifyInsertErr(err)
		if classified == err {
			log.Error("db: failed to insert product", zap.Error(err))
		}
		return Product{}, classified
	}

	return Product{}, ErrSlugExhausted
}

func (r *repository) createOnce(ctx context.Context, p Product, collectionIDs []uint) (Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Product{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, description, price, inventory, sku, category_id, promotion_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, p.Name, p.Slug, p.Description, p.Price, p.Inventory, p.SKU, p.CategoryID, p.PromotionID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}

	for _, cid := range collectionIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_collections (product_id, collection_id) VALUES ($1, $2)
		`, p.ID, cid); err != nil {
			return Product{}, err
		}
	}

	return p, tx.Commit()
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Product{}, err
	}
	defer tx.Rollback()

	var p Product
	err = tx.QueryRowContext(ctx, `
		UPDATE products
		SET name         = COALESCE($2, name),
		    description  = COALESCE($3, description),
		    price        = COALESCE($4, price),
		    inventory    = COALESCE($5, inventory),
		    sku          = COALESCE($6, sku),
		    category_id  = COALESCE($7, category_id),
		    promotion_id = COALESCE($8, promotion_id)
		WHERE id = $1
		RETURNING id, name, slug, description, price, inventory, sku, category_id, promotion_id, created_at
	`, id, input.Name, input.Description, input.Price, input.Inventory, input.SKU, input.CategoryID, input.PromotionID).
		Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Inventory, &p.SKU, &p.CategoryID, &p.PromotionID, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, classifyInsertErr(err)
	}

	// nil means untouched, an empty slice clears the links
	if input.CollectionIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_collections WHERE product_id = $1`, id); err != nil {
			return Product{}, err
		}
		for _, cid := range *input.CollectionIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO product_collections (product_id, collection_id) VALUES ($1, $2)
			`, id, cid); err != nil {
				return Product{}, classifyInsertErr(err)
			}
		}
	}

	return p, tx.Commit()
}

// Delete is blocked by the FK from order_items, so products referenced by
// historical orders stay put.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return ErrProductInUse
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetImages orders the primary image first, then by id.
func (r *repository) GetImages(ctx context.Context, productID uint) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, image, alt_text, is_primary, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY is_primary DESC, id ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Image, &img.AltText, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *repository) GetImageByID(ctx context.Context, id uint) (Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, image, alt_text, is_primary, created_at
		FROM product_images
		WHERE id = $1
	`, id).Scan(&img.ID, &img.ProductID, &img.Image, &img.AltText, &img.IsPrimary, &img.CreatedAt)

	if err == sql.ErrNoRows {
		return Image{}, ErrImageNotFound
	}
	return img, err
}

func (r *repository) AddImage(ctx context.Context, img Image) (Image, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_images (product_id, image, alt_text, is_primary)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, img.ProductID, img.Image, img.AltText, img.IsPrimary).
		Scan(&img.ID, &img.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return Image{}, ErrProductNotFound
		}
		return Image{}, err
	}
	return img, nil
}

func (r *repository) UpdateImage(ctx context.Context, id uint, input ImageUpdateInput) (Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx, `
		UPDATE product_images
		SET image      = COALESCE($2, image),
		    alt_text   = COALESCE($3, alt_text),
		    is_primary = COALESCE($4, is_primary)
		WHERE id = $1
		RETURNING id, product_id, image, alt_text, is_primary, created_at
	`, id, input.Image, input.AltText, input.IsPrimary).
		Scan(&img.ID, &img.ProductID, &img.Image, &img.AltText, &img.IsPrimary, &img.CreatedAt)

	if err == sql.ErrNoRows {
		return Image{}, ErrImageNotFound
	}
	return img, err
}

func (r *repository) DeleteImage(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}
	return nil
}
