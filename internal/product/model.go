package product

import "time"

// Product is the raw storage row. Read surfaces are shaped by ListItem and
// Detail below.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Inventory   int       `json:"inventory"`
	SKU         string    `json:"sku"`
	CategoryID  uint      `json:"category_id"`
	PromotionID *uint     `json:"promotion_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListItem is the public list row: a thumbnail view with the primary image
// and a stock flag instead of the raw inventory count.
type ListItem struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Price   float64 `json:"price"`
	Image   *string `json:"image"`
	InStock bool    `json:"in_stock"`
}

// Image is a URL reference owned by a product. At most one per product is
// expected to be primary, by convention rather than constraint.
type Image struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Image     string    `json:"image"`
	AltText   string    `json:"alt_text"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail carries everything both detail views need; Public and Staff pick
// the fields each caller class gets.
type Detail struct {
	Product
	CategoryName  string
	PromotionName *string
	CollectionIDs []uint
	Images        []Image
}

// PublicDetail shows human-readable category/promotion labels.
type PublicDetail struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Inventory   int       `json:"inventory"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Promotion   *string   `json:"promotion"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

// StaffDetail swaps the labels for write-oriented ids.
type StaffDetail struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Inventory     int       `json:"inventory"`
	SKU           string    `json:"sku"`
	CategoryID    uint      `json:"category_id"`
	CollectionIDs []uint    `json:"collection_ids"`
	PromotionID   *uint     `json:"promotion_id"`
	Images        []Image   `json:"images"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d Detail) Public() PublicDetail {
	return PublicDetail{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Price:       d.Price,
		Inventory:   d.Inventory,
		SKU:         d.SKU,
		Category:    d.CategoryName,
		Promotion:   d.PromotionName,
		Images:      d.Images,
		CreatedAt:   d.CreatedAt,
	}
}

func (d Detail) Staff() StaffDetail {
	return StaffDetail{
		ID:            d.ID,
		Name:          d.Name,
		Slug:          d.Slug,
		Description:   d.Description,
		Price:         d.Price,
		Inventory:     d.Inventory,
		SKU:           d.SKU,
		CategoryID:    d.CategoryID,
		CollectionIDs: d.CollectionIDs,
		PromotionID:   d.PromotionID,
		Images:        d.Images,
		CreatedAt:     d.CreatedAt,
	}
}

type CreateInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	Inventory     int     `json:"inventory"`
	SKU           string  `json:"sku" binding:"required"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	CollectionIDs []uint  `json:"collection_ids"`
	PromotionID   *uint   `json:"promotion_id"`
}

type UpdateInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Inventory     *int     `json:"inventory"`
	SKU           *string  `json:"sku"`
	CategoryID    *uint    `json:"category_id"`
	CollectionIDs *[]uint  `json:"collection_ids"`
	PromotionID   *uint    `json:"promotion_id"`
}

type ImageCreateInput struct {
	Image     string `json:"image" binding:"required"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
}

type ImageUpdateInput struct {
	Image     *string `json:"image"`
	AltText   *string `json:"alt_text"`
	IsPrimary *bool   `json:"is_primary"`
}
