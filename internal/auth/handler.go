package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger        *slog.Logger
	service       *Service
	codec         *TokenCodec
	cookies       *CookieManager
	resolver      *Resolver
	validate      *validator.Validate
	onLoginFailed func()
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, codec *TokenCodec, cookies *CookieManager, resolver *Resolver) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		codec:    codec,
		cookies:  cookies,
		resolver: resolver,
		validate: validator.New(),
	}
}

// OnLoginFailed registers a callback invoked on every rejected login,
// used to feed the failure counter metric.
func (h *Handler) OnLoginFailed(fn func()) {
	h.onLoginFailed = fn
}

// MountRoutes registers auth routes on the provided router. Login gets a
// stricter per-IP rate limit than the rest of the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User Principal `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		errs := make([]string, 0, 2)
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErr.Field()+" is invalid")
		}
		httpx.ValidationProblem(w, errs)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.onLoginFailed != nil {
			h.onLoginFailed()
		}
		httpx.RespondError(w, err)
		return
	}

	principal := user.Principal()
	token, err := h.codec.Create(principal)
	if err != nil {
		h.logger.Error("sign session token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	h.cookies.Set(w, token)
	httpx.JSON(w, http.StatusOK, loginResponse{User: principal})
}

// handleLogout deletes the session cookie. It is idempotent and requires no
// valid session: logging out while already anonymous still succeeds.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Delete(w)
	httpx.NoContent(w)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.resolver.RequireAuth(r)
	if err != nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{User: *p})
}
