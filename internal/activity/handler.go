package activity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

// Handler serves the read-only activity feed.
type Handler struct {
	logger *slog.Logger
	repo   Repository
	guard  *auth.Middleware
}

func NewHandler(logger *slog.Logger, repo Repository, guard *auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermActivityView))
		r.Get("/", h.list)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := httpx.PageParams(r)
	filter := ListFilter{Entity: r.URL.Query().Get("entity")}
	if raw := r.URL.Query().Get("actor_id"); raw != "" {
		if id, ok := httpx.IDParam(raw); ok {
			filter.ActorID = id
		}
	}

	entries, total, err := h.repo.List(r.Context(), filter, shared.NewPagination(page, perPage, 0))
	if err != nil {
		h.logger.Error("list activity", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}
