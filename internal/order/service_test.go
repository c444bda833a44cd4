package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Place(ctx context.Context, userID uint, shippingAddress string, lines []LineInput) (Order, error) {
	args := m.Called(ctx, userID, shippingAddress, lines)
	return args.Get(0).(Order), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) ([]Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uint, status string) (Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(Order), args.Error(1)
}

func (m *MockRepository) UpdatePayment(ctx context.Context, id uint, paid bool) (Order, error) {
	args := m.Called(ctx, id, paid)
	return args.Get(0).(Order), args.Error(1)
}

func (m *MockRepository) GetAllItems(ctx context.Context) ([]OrderItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]OrderItem), args.Error(1)
}

func (m *MockRepository) GetItemsByUserID(ctx context.Context, userID uint) ([]OrderItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]OrderItem), args.Error(1)
}

func (m *MockRepository) GetItemByID(ctx context.Context, id uint) (OrderItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(OrderItem), args.Error(1)
}

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects empty item list", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.PlaceOrder(ctx, 1, PlaceInput{ShippingAddress: "1 Main St"})
		assert.ErrorIs(t, err, ErrNoItems)
		repo.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delegates to repo and survives nil publisher", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		lines := []LineInput{{ProductID: 1, Quantity: 2}}
		repo.On("Place", ctx, uint(1), "1 Main St", lines).
			Return(Order{ID: 5, UserID: 1, Status: StatusPending, TotalAmount: 40}, nil)

		o, err := svc.PlaceOrder(ctx, 1, PlaceInput{ShippingAddress: "1 Main St", Items: lines})
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, 40.0, o.TotalAmount)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown product surfaces", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("Place", ctx, uint(1), mock.Anything, mock.Anything).
			Return(Order{}, ErrProductNotFound)

		_, err := svc.PlaceOrder(ctx, 1, PlaceInput{
			ShippingAddress: "1 Main St",
			Items:           []LineInput{{ProductID: 404, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Allowed transitions", func(t *testing.T) {
		cases := []struct{ from, to string }{
			{StatusPending, StatusProcessing},
			{StatusProcessing, StatusShipped},
			{StatusShipped, StatusDelivered},
			{StatusPending, StatusCanceled},
			{StatusProcessing, StatusCanceled},
			{StatusShipped, StatusCanceled},
		}

		for _, tc := range cases {
			repo := new(MockRepository)
			svc := NewService(repo, nil)

			repo.On("GetByID", ctx, uint(1)).Return(Order{ID: 1, Status: tc.from}, nil)
			repo.On("UpdateStatus", ctx, uint(1), tc.to).Return(Order{ID: 1, Status: tc.to}, nil)

			o, err := svc.UpdateStatus(ctx, 1, tc.to)
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, o.Status)
		}
	})

	t.Run("Blocked transitions", func(t *testing.T) {
		cases := []struct{ from, to string }{
			{StatusPending, StatusShipped},
			{StatusPending, StatusDelivered},
			{StatusProcessing, StatusDelivered},
			{StatusDelivered, StatusCanceled},
			{StatusCanceled, StatusPending},
			{StatusDelivered, StatusPending},
		}

		for _, tc := range cases {
			repo := new(MockRepository)
			svc := NewService(repo, nil)

			repo.On("GetByID", ctx, uint(1)).Return(Order{ID: 1, Status: tc.from}, nil)

			_, err := svc.UpdateStatus(ctx, 1, tc.to)
			assert.ErrorIs(t, err, ErrBadTransition, "%s -> %s", tc.from, tc.to)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Unknown status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.UpdateStatus(ctx, 1, "teleported")
		assert.ErrorIs(t, err, ErrBadStatus)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestService_GetOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Staff sees all", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("GetAll", ctx).Return([]Order{{ID: 1}, {ID: 2}}, nil)

		orders, err := svc.GetOrders(ctx, 1, true)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Others see only their own", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("GetByUserID", ctx, uint(1)).Return([]Order{{ID: 1, UserID: 1}}, nil)

		orders, err := svc.GetOrders(ctx, 1, false)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		repo.AssertNotCalled(t, "GetAll", mock.Anything)
	})
}
