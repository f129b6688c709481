package budget

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/mahoneyreunion/reunion/internal/platform/httpx"
)

// Handler serves the public cost estimator.
type Handler struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(httprate.LimitByIP(30, time.Minute)).Post("/estimate", h.estimate)
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.ValidationProblem(w, []string{"attendees, nights and room_tier are required"})
		return
	}

	estimate, err := req.Estimate()
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"estimate": estimate})
}
