package user

import (
	"context"

	"blaemart-be/internal/logger"
	"blaemart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (User, error)
	CreateSuperuser(ctx context.Context, input SuperuserInput) (User, error)
	Login(ctx context.Context, email, password string) (TokenPair, User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetByID(ctx context.Context, id uint) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (User, error) {
	log := logger.FromCtx(ctx)

	role, err := RoleFromFlags(input.IsVendor, input.IsCustomer, input.IsDelivery)
	if err != nil {
		return User{}, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, User{
		Email:    utils.NormalizeEmail(input.Email),
		Password: hashed,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return User{}, err
	}

	log.Info("register completed",
		zap.Uint("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return u, nil
}

// CreateSuperuser forces is_staff and is_superuser. Explicitly passing either
// as false is rejected rather than silently overridden.
func (s *service) CreateSuperuser(ctx context.Context, input SuperuserInput) (User, error) {
	if (input.IsStaff != nil && !*input.IsStaff) ||
		(input.IsSuperuser != nil && !*input.IsSuperuser) {
		return User{}, ErrSuperuserFlags
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Email:       utils.NormalizeEmail(input.Email),
		Password:    hashed,
		Role:        RoleCustomer,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	})
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		log.Info("login failed: email not found")
		return TokenPair{}, User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login failed: password mismatch", zap.Uint("user_id", u.ID))
		return TokenPair{}, User{}, ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, User{}, ErrInactiveAccount
	}

	pair, err := GenerateTokenPair(u)
	if err != nil {
		return TokenPair{}, User{}, err
	}

	return pair, u, nil
}

// Refresh exchanges an unexpired refresh token for a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	if claims.TokenType != TokenTypeRefresh {
		return "", ErrNotRefreshToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !u.IsActive {
		return "", ErrInactiveAccount
	}

	return GenerateToken(u, TokenTypeAccess, AccessTokenTTL())
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}
