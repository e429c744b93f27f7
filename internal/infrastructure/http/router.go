package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	HealthHandler   *handlers.HealthHandler
	Identity        *middleware.Identity
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	UserRateLimit   func(http.Handler) http.Handler
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))
		r.Use(cfg.Identity.Handler)
		if cfg.UserRateLimit != nil {
			r.Use(cfg.UserRateLimit)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", cfg.UsersHandler.List)
			r.Post("/", cfg.UsersHandler.Create)
			r.Get("/me", cfg.UsersHandler.Me)
			r.Put("/me/password", cfg.AuthHandler.ChangePassword)
			r.Patch("/{id}/active", cfg.UsersHandler.SetActive)
			r.Patch("/{id}/role", cfg.UsersHandler.ChangeRole)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", cfg.ProjectsHandler.List)
			r.Post("/", cfg.ProjectsHandler.Create)
			r.Patch("/{id}", cfg.ProjectsHandler.Rename)
			r.Get("/{id}/tasks", cfg.ProjectsHandler.ListTasks)
			r.Post("/{id}/tasks", cfg.ProjectsHandler.CreateTask)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Patch("/{id}", cfg.TasksHandler.Update)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Msg("request")
		})
	}
}
