package cart

import (
	"context"
	"errors"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context, userID uint) (Cart, error)
	GetCarts(ctx context.Context) ([]Cart, error)
	GetCartByID(ctx context.Context, id uint) (Cart, error)

	AddItem(ctx context.Context, userID uint, input AddItemInput) (CartItem, error)
	GetOwnItems(ctx context.Context, userID uint) ([]CartItem, error)
	GetAllItems(ctx context.Context) ([]CartItem, error)
	GetItem(ctx context.Context, id uint) (CartItem, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) (CartItem, bool, error)
	RemoveItem(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) getOrCreate(ctx context.Context, userID uint) (Cart, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return Cart{}, err
	}
	return s.repo.CreateForUser(ctx, userID)
}

func withTotals(c Cart, items []CartItem) Cart {
	c.Items = items
	for _, it := range items {
		c.TotalItems += it.Quantity
		c.TotalPrice += it.Subtotal
	}
	return c
}

// GetCart lazily creates the user's cart on first access.
func (s *service) GetCart(ctx context.Context, userID uint) (Cart, error) {
	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return Cart{}, err
	}
	return withTotals(c, items), nil
}

func (s *service) GetCarts(ctx context.Context) ([]Cart, error) {
	carts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i, c := range carts {
		items, err := s.repo.GetItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		carts[i] = withTotals(c, items)
	}
	return carts, nil
}

func (s *service) GetCartByID(ctx context.Context, id uint) (Cart, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Cart{}, err
	}

	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return Cart{}, err
	}
	return withTotals(c, items), nil
}

// AddItem is get-or-update: a repeat add for the same product bumps the
// existing row's quantity instead of duplicating it.
func (s *service) AddItem(ctx context.Context, userID uint, input AddItemInput) (CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", input.ProductID),
	)

	if input.Quantity < 1 {
		return CartItem{}, ErrQuantityInvalid
	}

	c, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return CartItem{}, err
	}

	existing, err := s.repo.FindItem(ctx, c.ID, input.ProductID)
	if err == nil {
		return s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+input.Quantity)
	}
	if !errors.Is(err, ErrItemNotFound) {
		return CartItem{}, err
	}

	it, err := s.repo.InsertItem(ctx, c.ID, input.ProductID, input.Quantity)
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return CartItem{}, err
	}

	log.Info("AddItem success", zap.Uint("cart_item_id", it.ID), zap.Int("quantity", it.Quantity))
	return it, nil
}

func (s *service) GetOwnItems(ctx context.Context, userID uint) ([]CartItem, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return []CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.GetItems(ctx, c.ID)
}

func (s *service) GetAllItems(ctx context.Context) ([]CartItem, error) {
	return s.repo.GetAllItems(ctx)
}

func (s *service) GetItem(ctx context.Context, id uint) (CartItem, error) {
	return s.repo.GetItemByID(ctx, id)
}

// UpdateQuantity removes the row when quantity drops to zero or below; the
// second return reports whether the item was removed.
func (s *service) UpdateQuantity(ctx context.Context, id uint, quantity int) (CartItem, bool, error) {
	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, id); err != nil {
			return CartItem{}, false, err
		}
		return CartItem{}, true, nil
	}

	it, err := s.repo.UpdateItemQuantity(ctx, id, quantity)
	return it, false, err
}

func (s *service) RemoveItem(ctx context.Context, id uint) error {
	return s.repo.DeleteItem(ctx, id)
}
