package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	commandOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskhub_commands_total",
			Help: "Use case executions by name and outcome",
		},
		[]string{"command", "outcome"},
	)
)

// PrometheusMiddleware records request duration, labelled by chi route pattern so ids
// in the path do not explode cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		httpRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

// RecordCommand counts one use case execution under the error kind it ended with.
func RecordCommand(command string, err error) {
	commandOutcomes.WithLabelValues(command, Outcome(err)).Inc()
}

// Outcome names the error kind of err, or "ok".
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domerrors.ErrValidation):
		return "validation"
	case errors.Is(err, domerrors.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domerrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, domerrors.ErrBusinessRule):
		return "business_rule"
	default:
		return "infrastructure"
	}
}
