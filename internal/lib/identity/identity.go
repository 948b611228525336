// Package identity turns bearer credentials into subjects and subjects into
// contact details.
//
// Two verifiers exist. Clerk session tokens are verified by the Clerk SDK
// inside the auth middleware; HMACAuthority verifies and mints HS256 tokens
// signed with a shared secret for deployments without Clerk.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and
	// unsupported algorithms.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for tokens outside their validity window.
	ErrExpiredToken = errors.New("token expired")

	// ErrMissingSubject is returned for well-signed tokens without a subject.
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims is what the rest of the service needs from a verified token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Profile is the contact information used to notify a user.
type Profile struct {
	UserID    string
	Email     string
	FirstName string
}

// Directory resolves a subject to a Profile.
type Directory interface {
	Lookup(ctx context.Context, userID string) (*Profile, error)
}
