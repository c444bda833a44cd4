package user

import (
	"time"

	"blaemart-be/internal/auth"
)

// Re-exported so callers of the identity service never touch the token
// package directly.
const (
	TokenTypeAccess  = auth.TokenTypeAccess
	TokenTypeRefresh = auth.TokenTypeRefresh
)

// AccessTokenTTL reflects the configured access-token lifetime.
func AccessTokenTTL() time.Duration {
	return auth.AccessTokenTTL
}

func RefreshTokenTTL() time.Duration {
	return auth.RefreshTokenTTL
}

type (
	Claims    = auth.Claims
	TokenPair = auth.TokenPair
)

func HashPassword(password string) (string, error) {
	return auth.HashPassword(password)
}

func CheckPasswordHash(password, hash string) bool {
	return auth.CheckPasswordHash(password, hash)
}

func (u User) subject() auth.Subject {
	return auth.Subject{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    string(u.Role),
		IsStaff: u.IsStaff,
	}
}

func GenerateToken(u User, tokenType string, ttl time.Duration) (string, error) {
	return auth.GenerateToken(u.subject(), tokenType, ttl)
}

// GenerateTokenPair issues the short-lived access token and the longer-lived
// refresh token in one go.
func GenerateTokenPair(u User) (TokenPair, error) {
	return auth.GenerateTokenPair(u.subject())
}

func ParseToken(tokenStr string) (*Claims, error) {
	return auth.ParseToken(tokenStr)
}
