package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCodec(secret string, now time.Time) *TokenCodec {
	codec := NewTokenCodec(secret)
	codec.now = func() time.Time { return now }
	return codec
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", now)

	principal := Principal{ID: 42, Email: "cousin@mahoney.family", Name: "Cousin", Role: RoleAdmin}
	token, err := codec.Create(principal)
	require.NoError(t, err)

	claims := codec.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, principal.Email, claims.Email)
	assert.Equal(t, principal.Name, claims.Name)
	assert.Equal(t, principal.Role, claims.Role)

	id, ok := claims.PrincipalID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestTokenVerifyFailuresAreNil(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", now)
	token, err := codec.Create(Principal{ID: 1, Role: RoleViewer})
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(""))
	assert.Nil(t, codec.Verify("garbage"))
	assert.Nil(t, codec.Verify(token+"x"))

	// A token signed with another secret is indistinguishable from garbage.
	other := fixedCodec("other-secret", now)
	assert.Nil(t, other.Verify(token))
}

func TestTokenExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := fixedCodec("test-secret", issued)
	token, err := codec.Create(Principal{ID: 7, Role: RoleModerator})
	require.NoError(t, err)

	// Just inside the window.
	codec.now = func() time.Time { return issued.Add(TokenTTL - time.Second) }
	assert.NotNil(t, codec.Verify(token))

	// exp exactly equal to "now" is already expired, not borderline-valid.
	codec.now = func() time.Time { return issued.Add(TokenTTL) }
	assert.Nil(t, codec.Verify(token))

	codec.now = func() time.Time { return issued.Add(TokenTTL + time.Hour) }
	assert.Nil(t, codec.Verify(token))
}
