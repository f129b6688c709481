package auth

import (
	"net/http"

	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Resolver combines the cookie adapter and the token codec to produce the
// current principal for a request.
type Resolver struct {
	codec   *TokenCodec
	cookies *CookieManager
}

// NewResolver constructs a Resolver.
func NewResolver(codec *TokenCodec, cookies *CookieManager) *Resolver {
	return &Resolver{codec: codec, cookies: cookies}
}

// CurrentUser resolves the principal carried by the request, or nil. Missing
// cookie, expired token and tampered token all collapse into the same nil
// result so that callers cannot leak which failure mode occurred. It never
// returns an error.
func (res *Resolver) CurrentUser(r *http.Request) *Principal {
	token, ok := res.cookies.Token(r)
	if !ok {
		return nil
	}
	claims := res.codec.Verify(token)
	if claims == nil {
		return nil
	}
	id, ok := claims.PrincipalID()
	if !ok {
		return nil
	}
	return &Principal{ID: id, Email: claims.Email, Name: claims.Name, Role: claims.Role}
}

// IsAuthenticated reports whether the request carries a valid session.
func (res *Resolver) IsAuthenticated(r *http.Request) bool {
	return res.CurrentUser(r) != nil
}

// RequireAuth returns the principal or shared.ErrUnauthenticated, for call
// sites that propagate the error into a 401 response.
func (res *Resolver) RequireAuth(r *http.Request) (*Principal, error) {
	p := res.CurrentUser(r)
	if p == nil {
		return nil, shared.ErrUnauthenticated
	}
	return p, nil
}
