package files

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   *auth.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, guard *auth.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermFilesView))
		r.Get("/", h.list)
		r.Get("/{id}/url", h.downloadURL)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermFilesUpload))
		r.Post("/", h.upload)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequirePermission(auth.PermFilesDelete))
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, perPage := httpx.PageParams(r)
	filter := ListFilesFilter{Search: r.URL.Query().Get("q")}

	files, total, err := h.service.List(r.Context(), filter, shared.NewPagination(page, perPage, 0))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"files":      files,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+4096)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "multipart form with a file field is required")
		return
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "file field is required")
		return
	}
	defer src.Close()

	actor := auth.PrincipalFromContext(r.Context())
	file, err := h.service.Upload(r.Context(), actor, header.Filename, header.Header.Get("Content-Type"), src, header.Size)
	if err != nil {
		h.logger.Warn("upload file", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"file": file})
}

func (h *Handler) downloadURL(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	url, err := h.service.DownloadURL(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"url": url})
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
