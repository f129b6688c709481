package payments

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

// Handler serves the public registration endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/", h.register)
	r.Post("/{id}/confirm", h.confirm)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidationProblem(w, []string{"name, email, attendees, nights and room_tier are required"})
		return
	}

	reg, clientSecret, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.logger.Warn("create registration", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"registration":  reg,
		"client_secret": clientSecret,
	})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	reg, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"registration": reg})
}
