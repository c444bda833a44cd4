package profile

import (
	"context"
	"errors"

	"blaemart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetOwnProfile(ctx context.Context, userID uint) (Profile, error)
	UpdateOwnProfile(ctx context.Context, userID uint, input SelfUpdateInput) (Profile, error)
	GetPublicProfiles(ctx context.Context) ([]PublicProfile, error)
	GetPublicProfile(ctx context.Context, id uint) (PublicProfile, error)

	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, id uint) (Profile, error)
	CreateProfile(ctx context.Context, input AdminCreateInput) (Profile, error)
	UpdateProfile(ctx context.Context, id uint, input AdminUpdateInput) (Profile, error)
	DeleteProfile(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOwnProfile creates the profile lazily on first access, mirroring the
// one-per-user rule.
func (s *service) GetOwnProfile(ctx context.Context, userID uint) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return Profile{}, err
	}

	log := logger.FromCtx(ctx).With(zap.Uint("user_id", userID))

	p, err = s.repo.Create(ctx, Profile{
		UserID:          userID,
		MembershipLevel: MembershipBronze,
	})
	if errors.Is(err, ErrProfileExists) {
		// lost a race with a concurrent first access
		return s.repo.GetByUserID(ctx, userID)
	}
	if err != nil {
		log.Error("failed to create profile lazily", zap.Error(err))
		return Profile{}, err
	}

	log.Info("profile created lazily", zap.Uint("profile_id", p.ID))
	return p, nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, userID uint, input SelfUpdateInput) (Profile, error) {
	if _, err := s.GetOwnProfile(ctx, userID); err != nil {
		return Profile{}, err
	}
	return s.repo.UpdateByUserID(ctx, userID, input)
}

func (s *service) GetPublicProfiles(ctx context.Context) ([]PublicProfile, error) {
	profiles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		public = append(public, p.Public())
	}
	return public, nil
}

func (s *service) GetPublicProfile(ctx context.Context, id uint) (PublicProfile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PublicProfile{}, err
	}
	return p.Public(), nil
}

func (s *service) GetProfiles(ctx context.Context) ([]Profile, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetProfile(ctx context.Context, id uint) (Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateProfile(ctx context.Context, input AdminCreateInput) (Profile, error) {
	level := input.MembershipLevel
	if level == "" {
		level = MembershipBronze
	}
	if !ValidMembership(level) {
		return Profile{}, ErrBadMembership
	}

	return s.repo.Create(ctx, Profile{
		UserID:          input.UserID,
		Phone:           input.Phone,
		Email:           input.Email,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		Points:          input.Points,
		MembershipLevel: level,
		WantsNewsletter: input.WantsNewsletter,
		ProfileImage:    input.ProfileImage,
	})
}

func (s *service) UpdateProfile(ctx context.Context, id uint, input AdminUpdateInput) (Profile, error) {
	if input.MembershipLevel != nil && !ValidMembership(*input.MembershipLevel) {
		return Profile{}, ErrBadMembership
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteProfile(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
