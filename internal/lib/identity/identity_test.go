package identity

import (
	"context"
	"testing"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthority(t *testing.T, secret string, now time.Time) *HMACAuthority {
	t.Helper()
	a, err := NewHMACAuthority(secret, time.Hour)
	require.NoError(t, err)
	a.now = func() time.Time { return now }
	return a
}

func TestIssueThenVerify(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	a := newAuthority(t, "s3cret", now)

	raw, expiresAt, err := a.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := a.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestVerifyExpired(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	raw, _, err := newAuthority(t, "s3cret", now).Issue("user-1")
	require.NoError(t, err)

	// Within the leeway the token is still accepted.
	_, err = newAuthority(t, "s3cret", now.Add(time.Hour+10*time.Second)).Verify(context.Background(), raw)
	assert.NoError(t, err)

	_, err = newAuthority(t, "s3cret", now.Add(2*time.Hour)).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Now()
	raw, _, err := newAuthority(t, "s3cret", now).Issue("user-1")
	require.NoError(t, err)

	_, err = newAuthority(t, "other", now).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := newAuthority(t, "s3cret", time.Now()).Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	now := time.Now()
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: []byte("s3cret")}, nil)
	require.NoError(t, err)
	raw, err := jwt.Signed(signer).Claims(jwt.Claims{Expiry: jwt.NewNumericDate(now.Add(time.Hour))}).CompactSerialize()
	require.NoError(t, err)

	_, err = newAuthority(t, "s3cret", now).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS512, Key: []byte("s3cret")}, nil)
	require.NoError(t, err)
	raw, err := jwt.Signed(signer).Claims(jwt.Claims{Subject: "user-1"}).CompactSerialize()
	require.NoError(t, err)

	_, err = newAuthority(t, "s3cret", now).Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewHMACAuthorityValidatesInput(t *testing.T) {
	_, err := NewHMACAuthority("", time.Hour)
	assert.Error(t, err)

	_, err = NewHMACAuthority("s3cret", 0)
	assert.Error(t, err)
}

func TestProfileFromClerkUser(t *testing.T) {
	primary := "idn_2"
	first := "Diego"
	u := &clerk.User{
		ID:                    "user_1",
		FirstName:             &first,
		PrimaryEmailAddressID: &primary,
		EmailAddresses: []*clerk.EmailAddress{
			{ID: "idn_1", EmailAddress: "old@example.com"},
			{ID: "idn_2", EmailAddress: "diego@example.com"},
		},
	}

	profile, err := profileFromClerkUser(u)
	require.NoError(t, err)
	assert.Equal(t, &Profile{UserID: "user_1", Email: "diego@example.com", FirstName: "Diego"}, profile)
}

func TestProfileFromClerkUserFallsBackToFirstAddress(t *testing.T) {
	u := &clerk.User{
		ID:             "user_1",
		EmailAddresses: []*clerk.EmailAddress{{ID: "idn_1", EmailAddress: "only@example.com"}},
	}

	profile, err := profileFromClerkUser(u)
	require.NoError(t, err)
	assert.Equal(t, "only@example.com", profile.Email)
	assert.Empty(t, profile.FirstName)
}

func TestProfileFromClerkUserWithoutEmail(t *testing.T) {
	_, err := profileFromClerkUser(&clerk.User{ID: "user_1"})
	assert.Error(t, err)

	_, err = profileFromClerkUser(nil)
	assert.Error(t, err)
}
