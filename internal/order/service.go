package order

import (
	"context"
	"time"

	"blaemart-be/internal/events"
	"blaemart-be/internal/logger"
	"blaemart-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, userID uint, input PlaceInput) (Order, error)
	GetOrders(ctx context.Context, userID uint, staff bool) ([]Order, error)
	GetOrder(ctx context.Context, id uint) (Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (Order, error)
	UpdatePayment(ctx context.Context, id uint, paid bool) (Order, error)

	GetItems(ctx context.Context, userID uint, staff bool) ([]OrderItem, error)
	GetItem(ctx context.Context, id uint) (OrderItem, error)
}

type service struct {
	repo      Repository
	publisher *events.Publisher
}

func NewService(repo Repository, publisher *events.Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) publish(ctx context.Context, o Order, eventType string) {
	err := s.publisher.PublishOrderEvent(events.OrderEvent{
		OrderID:  o.ID,
		UserID:   o.UserID,
		Type:     eventType,
		Status:   o.Status,
		Total:    o.TotalAmount,
		Occurred: time.Now().UTC(),
	})
	if err != nil {
		// the order is already committed; losing the event must not fail it
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.Uint("order_id", o.ID), zap.String("type", eventType), zap.Error(err))
	}
}

func (s *service) PlaceOrder(ctx context.Context, userID uint, input PlaceInput) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", userID),
	)

	if len(input.Items) == 0 {
		return Order{}, ErrNoItems
	}

	o, err := s.repo.Place(ctx, userID, input.ShippingAddress, input.Items)
	if err != nil {
		metrics.RecordOrderOperation("place", false)
		log.Error("failed to place order", zap.Error(err))
		return Order{}, err
	}

	metrics.RecordOrderOperation("place", true)
	log.Info("PlaceOrder success",
		zap.Uint("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("line_items", len(o.Items)))

	s.publish(ctx, o, "created")
	return o, nil
}

func (s *service) GetOrders(ctx context.Context, userID uint, staff bool) ([]Order, error) {
	if staff {
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetOrder(ctx context.Context, id uint) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus enforces the lifecycle: pending -> processing -> shipped ->
// delivered, with canceled allowed from any non-terminal state.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, ErrBadStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if !CanTransition(current.Status, status) {
		metrics.RecordOrderOperation("status_update", false)
		return Order{}, ErrBadTransition
	}

	o, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		metrics.RecordOrderOperation("status_update", false)
		return Order{}, err
	}

	metrics.RecordOrderOperation("status_update", true)
	s.publish(ctx, o, "status_updated")
	return o, nil
}

func (s *service) UpdatePayment(ctx context.Context, id uint, paid bool) (Order, error) {
	return s.repo.UpdatePayment(ctx, id, paid)
}

func (s *service) GetItems(ctx context.Context, userID uint, staff bool) ([]OrderItem, error) {
	if staff {
		return s.repo.GetAllItems(ctx)
	}
	return s.repo.GetItemsByUserID(ctx, userID)
}

func (s *service) GetItem(ctx context.Context, id uint) (OrderItem, error) {
	return s.repo.GetItemByID(ctx, id)
}
