package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(t *testing.T) (chi.Router, *TokenCodec) {
	t.Helper()
	codec := fixedCodec("mw-secret", time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	resolver := NewResolver(codec, NewCookieManager(false))
	mw := Middleware{Resolver: resolver, Logger: testLogger()}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuthn)
		r.Use(mw.RequirePermission(PermUsersDelete))
		r.Delete("/api/admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			require.NotNil(t, p)
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r, codec
}

func doDelete(t *testing.T, r chi.Router, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/2", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestMiddlewareAnonymousIs401(t *testing.T) {
	r, _ := protectedRouter(t)
	assert.Equal(t, http.StatusUnauthorized, doDelete(t, r, "").Code)
}

func TestMiddlewareInsufficientRoleIs403(t *testing.T) {
	r, codec := protectedRouter(t)
	token, err := codec.Create(Principal{ID: 1, Role: RoleAdmin})
	require.NoError(t, err)
	res := doDelete(t, r, token)
	assert.Equal(t, http.StatusForbidden, res.Code)
	// The missing permission must not leak to the client.
	assert.NotContains(t, res.Body.String(), string(PermUsersDelete))
}

func TestMiddlewareSufficientRolePasses(t *testing.T) {
	r, codec := protectedRouter(t)
	token, err := codec.Create(Principal{ID: 1, Role: RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, doDelete(t, r, token).Code)
}

func TestMiddlewareTamperedTokenIs401(t *testing.T) {
	r, codec := protectedRouter(t)
	token, err := codec.Create(Principal{ID: 1, Role: RoleSuperAdmin})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doDelete(t, r, token+"x").Code)
}
