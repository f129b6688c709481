package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

func newTestResolver(now time.Time) (*Resolver, *TokenCodec) {
	codec := fixedCodec("resolver-secret", now)
	return NewResolver(codec, NewCookieManager(false)), codec
}

func TestCurrentUserAnonymous(t *testing.T) {
	resolver, _ := newTestResolver(time.Now())
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, resolver.CurrentUser(req))
	assert.False(t, resolver.IsAuthenticated(req))
	assert.False(t, CanAccessTab(resolver.CurrentUser(req), "messages"))
}

func TestCurrentUserValidSession(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, codec := newTestResolver(now)

	token, err := codec.Create(Principal{ID: 9, Email: "aunt@mahoney.family", Name: "Aunt", Role: RoleModerator})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	p := resolver.CurrentUser(req)
	require.NotNil(t, p)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, RoleModerator, p.Role)
	assert.True(t, resolver.IsAuthenticated(req))
}

func TestCurrentUserCollapsesFailureModes(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, codec := newTestResolver(now)

	token, err := codec.Create(Principal{ID: 9, Role: RoleViewer})
	require.NoError(t, err)

	// Tampered token and expired token are both just "not logged in".
	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token + "x"})
	assert.Nil(t, resolver.CurrentUser(tampered))

	codec.now = func() time.Time { return now.Add(TokenTTL + time.Minute) }
	expired := httptest.NewRequest(http.MethodGet, "/", nil)
	expired.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	assert.Nil(t, resolver.CurrentUser(expired))
}

func TestRequireAuth(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	resolver, codec := newTestResolver(now)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := resolver.RequireAuth(req)
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	token, err := codec.Create(Principal{ID: 3, Role: RoleAdmin})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	p, err := resolver.RequireAuth(req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
}
