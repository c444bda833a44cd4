package category

import (
	"context"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id uint) (Category, error)
	AddCategory(ctx context.Context, input CreateInput) (Category, error)
	UpdateCategory(ctx context.Context, id uint, input UpdateInput) (Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context) ([]Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetCategory(ctx context.Context, id uint) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddCategory(ctx context.Context, input CreateInput) (Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", input.Name),
	)

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	c, err := s.repo.Create(ctx, Category{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    isActive,
		Thumbnail:   input.Thumbnail,
	})
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return Category{}, err
	}

	log.Info("AddCategory success", zap.Uint("category_id", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uint, input UpdateInput) (Category, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteCategory"),
		zap.Uint("category_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("failed to delete category", zap.Error(err))
		return err
	}

	log.Info("DeleteCategory success")
	return nil
}
