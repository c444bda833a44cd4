package middleware

import (
	"net/http"
	"strings"

	"blaemart-be/internal/auth"

	"github.com/gin-gonic/gin"
)

// Keys under which the auth middleware stores the caller's identity.
const (
	UserIDKey = "userID"
	ClaimsKey = "jwtClaims"
)

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// but lets anonymous requests through. Used on read endpoints whose response
// shape depends on the caller (e.g. product detail for staff).
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireStaff must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || !claims.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff privileges required"})
			return
		}
		c.Next()
	}
}

func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func IsStaff(c *gin.Context) bool {
	claims, ok := CurrentClaims(c)
	return ok && claims.IsStaff
}
