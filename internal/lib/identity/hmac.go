package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
)

// DefaultLeeway absorbs clock skew when checking exp and nbf.
const DefaultLeeway = 30 * time.Second

// HMACAuthority verifies and issues HS256 JWTs.
type HMACAuthority struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// NewHMACAuthority returns an authority for secret. ttl is the lifetime of
// issued tokens.
func NewHMACAuthority(secret string, ttl time.Duration) (*HMACAuthority, error) {
	if secret == "" {
		return nil, errors.New("hmac secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &HMACAuthority{
		secret: []byte(secret),
		ttl:    ttl,
		leeway: DefaultLeeway,
		now:    time.Now,
	}, nil
}

// Verify implements Verifier.
func (a *HMACAuthority) Verify(_ context.Context, raw string) (*Claims, error) {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return nil, fmt.Errorf("%w: unsupported signing algorithm", ErrInvalidToken)
	}

	var claims jwt.Claims
	if err := tok.Claims(a.secret, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if err := claims.ValidateWithLeeway(jwt.Expected{Time: a.now()}, a.leeway); err != nil {
		if errors.Is(err, jwt.ErrExpired) || errors.Is(err, jwt.ErrNotValidYet) || errors.Is(err, jwt.ErrIssuedInTheFuture) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	out := &Claims{Subject: claims.Subject}
	if claims.Expiry != nil {
		out.ExpiresAt = claims.Expiry.Time()
	}
	return out, nil
}

// Issue mints a token for subject that expires after the authority's ttl.
func (a *HMACAuthority) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrMissingSubject
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: a.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create signer: %w", err)
	}

	now := a.now()
	expiresAt := now.Add(a.ttl)

	raw, err := jwt.Signed(signer).Claims(jwt.Claims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(expiresAt),
	}).CompactSerialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return raw, expiresAt, nil
}
