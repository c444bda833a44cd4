package collection

import (
	"context"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCollections(ctx context.Context, includeInactive bool) ([]Collection, error)
	GetCollection(ctx context.Context, id uint) (Collection, error)
	AddCollection(ctx context.Context, input CreateInput) (Collection, error)
	UpdateCollection(ctx context.Context, id uint, input UpdateInput) (Collection, error)
	DeleteCollection(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCollections hides inactive collections from non-staff callers.
func (s *service) GetCollections(ctx context.Context, includeInactive bool) ([]Collection, error) {
	return s.repo.GetAll(ctx, !includeInactive)
}

func (s *service) GetCollection(ctx context.Context, id uint) (Collection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) AddCollection(ctx context.Context, input CreateInput) (Collection, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCollection"),
		zap.String("title", input.Title),
	)

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	col, err := s.repo.Create(ctx, Collection{
		Title:       input.Title,
		Description: input.Description,
		IsActive:    isActive,
	})
	if err != nil {
		log.Error("failed to add collection", zap.Error(err))
		return Collection{}, err
	}

	log.Info("AddCollection success", zap.Uint("collection_id", col.ID), zap.String("slug", col.Slug))
	return col, nil
}

func (s *service) UpdateCollection(ctx context.Context, id uint, input UpdateInput) (Collection, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteCollection(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
