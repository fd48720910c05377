// Package auth verifies bearer ID tokens and exposes the caller's identity to
// handlers through the request context.
package auth

import (
	"context"
	"errors"
	"strings"
)

// User is the authenticated identity behind a request. Name carries the
// display name claim and seeds a new profile's full name.
type User struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
}

var (
	ErrNoToken      = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrUserDisabled = errors.New("user disabled")

	// ErrCertificateFetch means the signing keys could not be fetched; it maps
	// to 503 rather than 401.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier turns a raw bearer token into a User.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

type userContextKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// ExtractBearerToken returns the token part of an Authorization header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidToken
	}
	return token, nil
}
