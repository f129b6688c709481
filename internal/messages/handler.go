package messages

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Handler serves the public contact endpoint and the admin triage endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	guard    *auth.Middleware
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, guard *auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, guard: guard, validate: validator.New()}
}

// MountPublicRoutes registers the unauthenticated contact form endpoint.
// Submissions are rate limited per IP to keep the form usable but boring
// to abuse.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.With(httprate.LimitByIP(5, time.Minute)).Post("/", h.submit)
}

// MountAdminRoutes registers the triage endpoints under an authenticated group.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermMessagesView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermMessagesEdit))
		r.Put("/{id}/status", h.updateStatus)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermMessagesDelete))
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidationProblem(w, []string{"name, email and body are required"})
		return
	}

	msg, err := h.service.Submit(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := httpx.PageParams(r)
	filter := ListMessagesFilter{
		Status: Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}

	msgs, total, err := h.service.List(r.Context(), filter, shared.NewPagination(page, perPage, 0))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"messages":   msgs,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	msg, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}

	actor := auth.PrincipalFromContext(r.Context())
	msg, err := h.service.UpdateStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	actor := auth.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
