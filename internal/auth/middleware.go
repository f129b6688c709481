package auth

import (
	"log/slog"
	"net/http"

	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Middleware wires authentication and authorization guards for HTTP routes.
// These are the only entry points route handlers should use to make
// authorization decisions.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// RequireAuthn resolves the principal, stores it in the request context and
// rejects anonymous requests with 401.
func (m Middleware) RequireAuthn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := m.Resolver.CurrentUser(r)
		if p == nil {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
	})
}

// RequirePermission guards a route group with a single permission. The
// missing permission is named in the server log, not in the response body.
func (m Middleware) RequirePermission(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if p == nil {
				p = m.Resolver.CurrentUser(r)
				if p == nil {
					httpx.RespondError(w, shared.ErrUnauthenticated)
					return
				}
				r = r.WithContext(ContextWithPrincipal(r.Context(), p))
			}
			if err := RequirePermission(p, perm); err != nil {
				if m.Logger != nil {
					m.Logger.Warn("permission denied",
						slog.String("path", r.URL.Path),
						slog.String("permission", string(perm)),
						slog.Int64("user_id", p.ID),
					)
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
