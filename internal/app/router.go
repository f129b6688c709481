package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mahoneyreunion/reunion/internal/activity"
	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/budget"
	"github.com/mahoneyreunion/reunion/internal/files"
	"github.com/mahoneyreunion/reunion/internal/meetings"
	"github.com/mahoneyreunion/reunion/internal/messages"
	"github.com/mahoneyreunion/reunion/internal/observability"
	"github.com/mahoneyreunion/reunion/internal/pages"
	"github.com/mahoneyreunion/reunion/internal/payments"
	"github.com/mahoneyreunion/reunion/internal/tasks"
	"github.com/mahoneyreunion/reunion/internal/users"
	"github.com/mahoneyreunion/reunion/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	AuthMiddleware  *auth.Middleware
	UsersHandler    *users.Handler
	MessagesHandler *messages.Handler
	TasksHandler    *tasks.Handler
	MeetingsHandler *meetings.Handler
	FilesHandler    *files.Handler
	ActivityHandler *activity.Handler
	PagesHandler    *pages.Handler
	BudgetHandler   *budget.Handler
	PaymentsHandler *payments.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi router with the public site API and the
// authenticated admin API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		// Public site endpoints.
		r.Route("/contact", params.MessagesHandler.MountPublicRoutes)
		r.Route("/pages", params.PagesHandler.MountPublicRoutes)
		r.Route("/budget", params.BudgetHandler.MountRoutes)
		r.Route("/registration", params.PaymentsHandler.MountRoutes)

		// Admin endpoints: session required, then per-group permissions.
		r.Route("/admin", func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuthn)
			r.Route("/users", params.UsersHandler.MountRoutes)
			r.Route("/messages", params.MessagesHandler.MountAdminRoutes)
			r.Route("/tasks", params.TasksHandler.MountRoutes)
			r.Route("/meetings", params.MeetingsHandler.MountRoutes)
			r.Route("/files", params.FilesHandler.MountRoutes)
			r.Route("/activity", params.ActivityHandler.MountRoutes)
			r.Route("/pages", params.PagesHandler.MountAdminRoutes)
		})

		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
