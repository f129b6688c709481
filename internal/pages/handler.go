package pages

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Handler serves the public navigation list and the admin visibility
// controls.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	guard    *auth.Middleware
	activity *shared.ActivityRecorder
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, repo Repository, guard *auth.Middleware, activity *shared.ActivityRecorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, guard: guard, activity: activity, validate: validator.New()}
}

// MountPublicRoutes exposes the visible pages for site navigation.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/", h.listPublic)
}

// MountAdminRoutes exposes the full list and visibility controls.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermPagesManage))
		r.Get("/", h.listAll)
		r.Put("/{slug}", h.update)
	})
}

func (h *Handler) listPublic(w http.ResponseWriter, r *http.Request) {
	pages, err := h.repo.List(r.Context(), true)
	if err != nil {
		h.logger.Error("list pages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	pages, err := h.repo.List(r.Context(), false)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var req UpdatePageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}
	if req.empty() {
		httpx.ValidationProblem(w, []string{"no fields to update"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidationProblem(w, []string{"one or more fields are invalid"})
		return
	}

	page, err := h.repo.Update(r.Context(), slug, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	if actor := auth.PrincipalFromContext(r.Context()); actor != nil && h.activity != nil {
		if err := h.activity.Record(r.Context(), shared.ActivityEntry{
			ActorID:  actor.ID,
			Action:   "page.update",
			Entity:   "page",
			EntityID: page.Slug,
			Meta:     map[string]any{"visible": fmt.Sprintf("%t", page.Visible)},
		}); err != nil {
			h.logger.Warn("record activity", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"page": page})
}
