package promotion

import (
	"context"
	"time"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetPromotions(ctx context.Context) ([]Promotion, error)
	GetPromotion(ctx context.Context, id uint) (Promotion, error)
	AddPromotion(ctx context.Context, input CreateInput) (Promotion, error)
	UpdatePromotion(ctx context.Context, id uint, input UpdateInput) (Promotion, error)
	DeletePromotion(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetPromotions(ctx context.Context) ([]Promotion, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetPromotion(ctx context.Context, id uint) (Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func validateWindow(discount int, start, end time.Time) error {
	if discount < 1 || discount > 100 {
		return ErrDiscountRange
	}
	if !end.After(start) {
		return ErrDateOrder
	}
	return nil
}

func (s *service) AddPromotion(ctx context.Context, input CreateInput) (Promotion, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddPromotion"),
		zap.String("name", input.Name),
	)

	if err := validateWindow(input.DiscountPercent, input.StartDate, input.EndDate); err != nil {
		return Promotion{}, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	p, err := s.repo.Create(ctx, Promotion{
		Name:            input.Name,
		DiscountPercent: input.DiscountPercent,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		IsActive:        isActive,
	})
	if err != nil {
		log.Error("failed to add promotion", zap.Error(err))
		return Promotion{}, err
	}

	log.Info("AddPromotion success", zap.Uint("promotion_id", p.ID))
	return p, nil
}

// UpdatePromotion re-validates discount and date window against the merged
// state, so a partial update cannot sneak an end_date behind the stored
// start_date.
func (s *service) UpdatePromotion(ctx context.Context, id uint, input UpdateInput) (Promotion, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Promotion{}, err
	}

	discount := current.DiscountPercent
	if input.DiscountPercent != nil {
		discount = *input.DiscountPercent
	}
	start := current.StartDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := current.EndDate
	if input.EndDate != nil {
		end = *input.EndDate
	}

	if err := validateWindow(discount, start, end); err != nil {
		return Promotion{}, err
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) DeletePromotion(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
