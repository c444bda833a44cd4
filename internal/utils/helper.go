package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify converts a display name into a URL-safe slug. Uniqueness is the
// repository's job (see WithSuffix).
func Slugify(input string) string {
	// Convert input to lowercase
	slug := strings.ToLower(input)

	// Trim whitespace
	slug = strings.TrimSpace(slug)

	// Replace non-alphanumeric characters with dash
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")

	// Remove multiple dashes
	slug = multiDashRegex.ReplaceAllString(slug, "-")

	// Trim leading & trailing dashes
	slug = strings.Trim(slug, "-")

	return slug
}

// WithSuffix appends the numeric collision suffix: WithSuffix("shoes", 1) -> "shoes-1".
// n == 0 returns the base slug unchanged.
func WithSuffix(slug string, n int) string {
	if n == 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

// NormalizeEmail lowercases and trims an email before it is compared or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func StrPtr(s string) *string {
	return &s
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
