package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSetAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookieManager(true).Set(rec, "signed-token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestCookieRoundTrip(t *testing.T) {
	manager := NewCookieManager(false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := manager.Token(req)
	assert.False(t, ok, "absent cookie is a normal state, not an error")

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "signed-token"})
	token, ok := manager.Token(req)
	require.True(t, ok)
	assert.Equal(t, "signed-token", token)
}

func TestCookieDeleteIdempotent(t *testing.T) {
	manager := NewCookieManager(false)

	// Deleting twice, including when no cookie was ever set, must not fail
	// and must leave an expired cookie both times.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		manager.Delete(rec)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}
