package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the single cookie carrying the signed session token.
const SessionCookieName = "admin_session"

// CookieManager reads, writes and deletes the session cookie. It owns no
// state beyond the Secure flag, which is enabled in production.
type CookieManager struct {
	secure bool
}

// NewCookieManager constructs a CookieManager.
func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

// Set stores the token in the session cookie.
func (m *CookieManager) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token reads the session cookie. Absence is a normal state (anonymous
// visitor), reported through ok, not an error.
func (m *CookieManager) Token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Delete removes the session cookie. Deleting an absent cookie is a no-op.
func (m *CookieManager) Delete(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
