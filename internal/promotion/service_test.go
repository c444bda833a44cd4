package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Promotion), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (Promotion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Promotion), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Promotion) (Promotion, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Promotion), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input UpdateInput) (Promotion, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(Promotion), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_AddPromotion(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	t.Run("Valid promotion", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(p Promotion) bool {
			return p.DiscountPercent == 25 && p.IsActive
		})).Return(Promotion{ID: 1, Name: "Mid Year", DiscountPercent: 25}, nil)

		p, err := svc.AddPromotion(ctx, CreateInput{
			Name:            "Mid Year",
			DiscountPercent: 25,
			StartDate:       start,
			EndDate:         end,
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Discount out of range", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		for _, discount := range []int{0, 101, -5} {
			_, err := svc.AddPromotion(ctx, CreateInput{
				Name: "Bad", DiscountPercent: discount, StartDate: start, EndDate: end,
			})
			assert.ErrorIs(t, err, ErrDiscountRange)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("End date not after start", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddPromotion(ctx, CreateInput{
			Name: "Bad", DiscountPercent: 10, StartDate: start, EndDate: start,
		})
		assert.ErrorIs(t, err, ErrDateOrder)

		_, err = svc.AddPromotion(ctx, CreateInput{
			Name: "Bad", DiscountPercent: 10, StartDate: end, EndDate: start,
		})
		assert.ErrorIs(t, err, ErrDateOrder)
	})
}

func TestService_UpdatePromotion(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	stored := Promotion{ID: 1, Name: "Mid Year", DiscountPercent: 25, StartDate: start, EndDate: end}

	t.Run("Partial update validated against merged state", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", ctx, uint(1)).Return(stored, nil)

		// moving end_date before the stored start_date must be rejected
		before := start.AddDate(0, 0, -1)
		_, err := svc.UpdatePromotion(ctx, 1, UpdateInput{EndDate: &before})
		assert.ErrorIs(t, err, ErrDateOrder)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Valid partial update", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		discount := 50

		repo.On("GetByID", ctx, uint(1)).Return(stored, nil)
		repo.On("Update", ctx, uint(1), mock.Anything).
			Return(Promotion{ID: 1, DiscountPercent: 50, StartDate: start, EndDate: end}, nil)

		p, err := svc.UpdatePromotion(ctx, 1, UpdateInput{DiscountPercent: &discount})
		assert.NoError(t, err)
		assert.Equal(t, 50, p.DiscountPercent)
		repo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", ctx, uint(9)).Return(Promotion{}, ErrPromotionNotFound)

		_, err := svc.UpdatePromotion(ctx, 9, UpdateInput{})
		assert.ErrorIs(t, err, ErrPromotionNotFound)
	})
}
