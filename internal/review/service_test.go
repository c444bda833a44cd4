package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context, productID *uint) ([]Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint, productID *uint) ([]Review, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Review), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, rv Review) (Review, error) {
	args := m.Called(ctx, rv)
	return args.Get(0).(Review), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input UpdateInput) (Review, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(Review), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Author forced to caller and auto-approved", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(rv Review) bool {
			return rv.UserID == 7 && rv.IsApproved && rv.Rating == 4
		})).Return(Review{ID: 1, UserID: 7, Rating: 4, IsApproved: true}, nil)

		rv, err := svc.AddReview(ctx, 7, CreateInput{ProductID: 1, Rating: 4, Title: "Solid"})
		assert.NoError(t, err)
		assert.True(t, rv.IsApproved)
		repo.AssertExpectations(t)
	})

	t.Run("Rating outside 1..5 rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.AddReview(ctx, 7, CreateInput{ProductID: 1, Rating: rating})
			assert.ErrorIs(t, err, ErrRatingRange)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_GetReviews(t *testing.T) {
	ctx := context.Background()
	productID := uint(3)

	t.Run("Staff sees all with filter", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", ctx, &productID).Return([]Review{{ID: 1}, {ID: 2}}, nil)

		reviews, err := svc.GetReviews(ctx, 7, true, &productID)
		assert.NoError(t, err)
		assert.Len(t, reviews, 2)
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Others see only their own", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUserID", ctx, uint(7), (*uint)(nil)).Return([]Review{{ID: 1, UserID: 7}}, nil)

		reviews, err := svc.GetReviews(ctx, 7, false, nil)
		assert.NoError(t, err)
		assert.Len(t, reviews, 1)
	})
}

func TestService_UpdateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Rating still validated", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		bad := 9

		_, err := svc.UpdateReview(ctx, 1, UpdateInput{Rating: &bad}, false)
		assert.ErrorIs(t, err, ErrRatingRange)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Valid update delegates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		rating := 5

		repo.On("Update", ctx, uint(1), mock.Anything).Return(Review{ID: 1, Rating: 5}, nil)

		rv, err := svc.UpdateReview(ctx, 1, UpdateInput{Rating: &rating}, false)
		assert.NoError(t, err)
		assert.Equal(t, 5, rv.Rating)
	})

	t.Run("Approval toggle is staff-only", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		unapprove := false

		repo.On("Update", ctx, uint(1), mock.MatchedBy(func(in UpdateInput) bool {
			return in.IsApproved == nil
		})).Return(Review{ID: 1, IsApproved: true}, nil)

		rv, err := svc.UpdateReview(ctx, 1, UpdateInput{IsApproved: &unapprove}, false)
		assert.NoError(t, err)
		assert.True(t, rv.IsApproved)
		repo.AssertExpectations(t)
	})

	t.Run("Staff can toggle approval", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		unapprove := false

		repo.On("Update", ctx, uint(1), mock.MatchedBy(func(in UpdateInput) bool {
			return in.IsApproved != nil && !*in.IsApproved
		})).Return(Review{ID: 1, IsApproved: false}, nil)

		rv, err := svc.UpdateReview(ctx, 1, UpdateInput{IsApproved: &unapprove}, true)
		assert.NoError(t, err)
		assert.False(t, rv.IsApproved)
		repo.AssertExpectations(t)
	})
}
