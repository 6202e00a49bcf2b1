package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Validation *ValidationHandler
	Admin      *AdminHandler
	Health     *HealthHandler

	// Auth resolves the caller from the bearer token.
	Auth middleware.Middleware
	// RateLimit wraps the validation endpoint; nil disables it.
	RateLimit middleware.Middleware

	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	CORS           config.CORSConfig
	Logger         *slog.Logger
}

// NewRouter builds the HTTP handler: global middleware around a mux whose
// routes are instrumented under their registered pattern.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		_, route, _ := strings.Cut(pattern, " ")
		chain := append([]middleware.Middleware{
			middleware.Instrument(d.Metrics, route),
			middleware.Recovery(d.Logger, d.Metrics, route),
		}, mws...)
		mux.Handle(pattern, middleware.Chain(chain...)(h))
	}

	handle("GET /live", d.Health.Live)
	handle("GET /ready", d.Health.Ready)
	handle("GET /health", d.Health.Health)

	handle("POST /api/{version}/{kind}/validate", d.Validation.Validate, d.RateLimit)

	handle("GET /admin/validation/rules", d.Admin.Rules)
	handle("GET /admin/validation/history/{kind}/{id}", d.Admin.History)
	handle("GET /admin/validation/users/{id}/history", d.Admin.UserHistory)

	if d.MetricsHandler != nil {
		mux.Handle("GET /metrics", d.MetricsHandler)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Logger, d.Metrics, middleware.RouteGlobal),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
		d.Auth,
	)(mux)
}
