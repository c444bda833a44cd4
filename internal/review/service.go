package review

import (
	"context"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetReviews(ctx context.Context, userID uint, staff bool, productID *uint) ([]Review, error)
	GetReview(ctx context.Context, id uint) (Review, error)
	AddReview(ctx context.Context, userID uint, input CreateInput) (Review, error)
	UpdateReview(ctx context.Context, id uint, input UpdateInput, isStaff bool) (Review, error)
	DeleteReview(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetReviews shows staff everything and everyone else only their own,
// optionally narrowed to one product.
func (s *service) GetReviews(ctx context.Context, userID uint, staff bool, productID *uint) ([]Review, error) {
	if staff {
		return s.repo.GetAll(ctx, productID)
	}
	return s.repo.GetByUserID(ctx, userID, productID)
}

func (s *service) GetReview(ctx context.Context, id uint) (Review, error) {
	return s.repo.GetByID(ctx, id)
}

// AddReview forces the author to the caller and approves immediately.
func (s *service) AddReview(ctx context.Context, userID uint, input CreateInput) (Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddReview"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", input.ProductID),
	)

	if input.Rating < 1 || input.Rating > 5 {
		return Review{}, ErrRatingRange
	}

	rv, err := s.repo.Create(ctx, Review{
		ProductID:  input.ProductID,
		UserID:     userID,
		Rating:     input.Rating,
		Title:      input.Title,
		Body:       input.Body,
		IsApproved: true,
	})
	if err != nil {
		log.Error("failed to add review", zap.Error(err))
		return Review{}, err
	}

	log.Info("AddReview success", zap.Uint("review_id", rv.ID))
	return rv, nil
}

func (s *service) UpdateReview(ctx context.Context, id uint, input UpdateInput, isStaff bool) (Review, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return Review{}, ErrRatingRange
	}
	if !isStaff {
		// approval is a moderation decision
		input.IsApproved = nil
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteReview(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
