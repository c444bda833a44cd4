package profile

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Profile), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Profile), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) (Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(Profile), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uint, input AdminUpdateInput) (Profile, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(Profile), args.Error(1)
}

func (m *MockRepository) UpdateByUserID(ctx context.Context, userID uint, input SelfUpdateInput) (Profile, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(Profile), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_GetOwnProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing profile returned as-is", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUserID", ctx, uint(1)).
			Return(Profile{ID: 10, UserID: 1, MembershipLevel: MembershipGold}, nil)

		p, err := svc.GetOwnProfile(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, MembershipGold, p.MembershipLevel)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("First access creates bronze profile", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUserID", ctx, uint(2)).Return(Profile{}, ErrProfileNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(p Profile) bool {
			return p.UserID == 2 && p.MembershipLevel == MembershipBronze
		})).Return(Profile{ID: 11, UserID: 2, MembershipLevel: MembershipBronze}, nil)

		p, err := svc.GetOwnProfile(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(11), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Creation race falls back to re-read", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUserID", ctx, uint(3)).Return(Profile{}, ErrProfileNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(Profile{}, ErrProfileExists)
		repo.On("GetByUserID", ctx, uint(3)).Return(Profile{ID: 12, UserID: 3}, nil).Once()

		p, err := svc.GetOwnProfile(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, uint(12), p.ID)
	})
}

func TestService_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects unknown membership", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateProfile(ctx, AdminCreateInput{UserID: 1, MembershipLevel: "diamond"})
		assert.ErrorIs(t, err, ErrBadMembership)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Defaults to bronze", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(p Profile) bool {
			return p.MembershipLevel == MembershipBronze
		})).Return(Profile{ID: 1, MembershipLevel: MembershipBronze}, nil)

		_, err := svc.CreateProfile(ctx, AdminCreateInput{UserID: 1})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	bad := "diamond"
	good := MembershipPlatinum

	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.UpdateProfile(ctx, 1, AdminUpdateInput{MembershipLevel: &bad})
	assert.ErrorIs(t, err, ErrBadMembership)

	repo.On("Update", ctx, uint(1), mock.Anything).
		Return(Profile{ID: 1, MembershipLevel: good}, nil)

	p, err := svc.UpdateProfile(ctx, 1, AdminUpdateInput{MembershipLevel: &good})
	assert.NoError(t, err)
	assert.Equal(t, good, p.MembershipLevel)
}

func TestProfile_Public(t *testing.T) {
	img := "https://cdn.example.com/me.png"
	p := Profile{
		ID: 1, UserID: 2, Phone: "555-0100", Email: "a@b.com",
		ShippingAddress: "1 Main St", Points: 40,
		MembershipLevel: MembershipSilver, ProfileImage: &img,
		TotalOrders: 3, TotalSpent: 120.50,
	}

	pub := p.Public()
	assert.Equal(t, MembershipSilver, pub.MembershipLevel)
	assert.Equal(t, 3, pub.TotalOrders)
	assert.Equal(t, &img, pub.ProfileImage)

	// No contact or financial fields in the public view.
	body, err := json.Marshal(pub)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), "email")
	assert.NotContains(t, string(body), "phone")
	assert.NotContains(t, string(body), "address")
	assert.NotContains(t, string(body), "points")
	assert.NotContains(t, string(body), "total_spent")
}

func TestSelfUpdateInput_AdminOnlyFields(t *testing.T) {
	// points and membership_level are admin-managed; a self update payload
	// carrying them must not reach the repository.
	var input SelfUpdateInput
	err := json.Unmarshal([]byte(`{
		"phone": "555-0100",
		"points": 999999,
		"membership_level": "platinum"
	}`), &input)
	assert.NoError(t, err)
	assert.Equal(t, "555-0100", *input.Phone)

	fields := reflect.TypeOf(input)
	for i := 0; i < fields.NumField(); i++ {
		tag := fields.Field(i).Tag.Get("json")
		assert.NotEqual(t, "points", tag)
		assert.NotEqual(t, "membership_level", tag)
	}
}
