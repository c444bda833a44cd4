package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Defaults, overridable through Configure.
var (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 24 * time.Hour

	signingSecret string
)

var ErrInvalidToken = errors.New("invalid token")

// Configure wires the signing secret and token lifetimes from config. Zero
// TTLs leave the defaults in place; an empty secret falls back to the
// JWT_SECRET environment variable at signing time.
func Configure(secret string, accessTTL, refreshTTL time.Duration) {
	signingSecret = secret
	if accessTTL > 0 {
		AccessTokenTTL = accessTTL
	}
	if refreshTTL > 0 {
		RefreshTokenTTL = refreshTTL
	}
}

func secret() string {
	if signingSecret != "" {
		return signingSecret
	}
	return os.Getenv("JWT_SECRET")
}

// Subject is the identity a token is issued for.
type Subject struct {
	UserID  uint
	Email   string
	Role    string
	IsStaff bool
}

type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateToken(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	key := secret()
	if key == "" {
		return "", errors.New("JWT_SECRET is not set")
	}

	claims := Claims{
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		IsStaff:   sub.IsStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// GenerateTokenPair issues the short-lived access token and the longer-lived
// refresh token in one go.
func GenerateTokenPair(sub Subject) (TokenPair, error) {
	access, err := GenerateToken(sub, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := GenerateToken(sub, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func ParseToken(tokenStr string) (*Claims, error) {
	key := secret()
	if key == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(key), nil
		},
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
