package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context, onlyActive bool) ([]Collection, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Collection), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (Collection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Collection), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, col Collection) (Collection, error) {
	args := m.Called(ctx, col)
	return args.Get(0).(Collection), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input UpdateInput) (Collection, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(Collection), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_GetCollections(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-staff only sees active", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", ctx, true).Return([]Collection{{ID: 1, Title: "Summer"}}, nil)

		cols, err := svc.GetCollections(ctx, false)
		assert.NoError(t, err)
		assert.Len(t, cols, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Staff sees everything", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", ctx, false).Return([]Collection{{ID: 1}, {ID: 2, IsActive: false}}, nil)

		cols, err := svc.GetCollections(ctx, true)
		assert.NoError(t, err)
		assert.Len(t, cols, 2)
		repo.AssertExpectations(t)
	})
}

func TestService_AddCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to active", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(col Collection) bool {
			return col.Title == "Summer Sale" && col.IsActive
		})).Return(Collection{ID: 1, Title: "Summer Sale", Slug: "summer-sale", IsActive: true}, nil)

		col, err := svc.AddCollection(ctx, CreateInput{Title: "Summer Sale"})
		assert.NoError(t, err)
		assert.Equal(t, "summer-sale", col.Slug)
		repo.AssertExpectations(t)
	})

	t.Run("Repo error propagates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.Anything).Return(Collection{}, errors.New("db error"))

		_, err := svc.AddCollection(ctx, CreateInput{Title: "Summer Sale"})
		assert.Error(t, err)
	})
}

func TestService_DeleteCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Delete", ctx, uint(9)).Return(ErrCollectionNotFound)

		assert.ErrorIs(t, svc.DeleteCollection(ctx, 9), ErrCollectionNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Delete", ctx, uint(2)).Return(nil)

		assert.NoError(t, svc.DeleteCollection(ctx, 2))
	})
}
