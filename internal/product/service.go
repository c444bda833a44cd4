package product

import (
	"context"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	SearchProducts(ctx context.Context, term string) ([]ListItem, error)
	GetProduct(ctx context.Context, id uint) (Detail, error)
	AddProduct(ctx context.Context, input CreateInput) (Product, error)
	UpdateProduct(ctx context.Context, id uint, input UpdateInput) (Product, error)
	DeleteProduct(ctx context.Context, id uint) error

	GetImages(ctx context.Context, productID uint) ([]Image, error)
	GetImage(ctx context.Context, id uint) (Image, error)
	AddImage(ctx context.Context, productID uint, input ImageCreateInput) (Image, error)
	UpdateImage(ctx context.Context, id uint, input ImageUpdateInput) (Image, error)
	DeleteImage(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SearchProducts(ctx context.Context, term string) ([]ListItem, error) {
	return s.repo.Search(ctx, term)
}

func (s *service) GetProduct(ctx context.Context, id uint) (Detail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *service) AddProduct(ctx context.Context, input CreateInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddProduct"),
		zap.String("name", input.Name),
		zap.String("sku", input.SKU),
	)

	if input.Price <= 0 {
		return Product{}, ErrPriceInvalid
	}
	if input.Inventory < 0 {
		return Product{}, ErrInventoryInvalid
	}

	p, err := s.repo.Create(ctx, Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Inventory:   input.Inventory,
		SKU:         input.SKU,
		CategoryID:  input.CategoryID,
		PromotionID: input.PromotionID,
	}, input.CollectionIDs)
	if err != nil {
		log.Error("failed to add product", zap.Error(err))
		return Product{}, err
	}

	log.Info("AddProduct success", zap.Uint("product_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uint, input UpdateInput) (Product, error) {
	if input.Price != nil && *input.Price <= 0 {
		return Product{}, ErrPriceInvalid
	}
	if input.Inventory != nil && *input.Inventory < 0 {
		return Product{}, ErrInventoryInvalid
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetImages(ctx context.Context, productID uint) ([]Image, error) {
	// resolve the product first so an unknown id is a 404, not an empty list
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.GetImages(ctx, productID)
}

func (s *service) GetImage(ctx context.Context, id uint) (Image, error) {
	return s.repo.GetImageByID(ctx, id)
}

func (s *service) AddImage(ctx context.Context, productID uint, input ImageCreateInput) (Image, error) {
	return s.repo.AddImage(ctx, Image{
		ProductID: productID,
		Image:     input.Image,
		AltText:   input.AltText,
		IsPrimary: input.IsPrimary,
	})
}

func (s *service) UpdateImage(ctx context.Context, id uint, input ImageUpdateInput) (Image, error) {
	return s.repo.UpdateImage(ctx, id, input)
}

func (s *service) DeleteImage(ctx context.Context, id uint) error {
	return s.repo.DeleteImage(ctx, id)
}
