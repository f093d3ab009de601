package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmcleod/tagrelay/lookup"
)

//go:generate mockgen -source=api.go -destination=../internal/mocks/mock_checker.go -package=mocks

// Checker performs one phone-number lookup. *lookup.Client implements it.
type Checker interface {
	Check(ctx context.Context, req lookup.Request) (*lookup.Result, error)
}

// API holds the dependencies needed by the REST handlers.
type API struct {
	checker  Checker
	audit    *auditLogger
	metrics  *metricsCollector
	registry *prometheus.Registry
	now      func() time.Time
}

//go:embed openapi.yaml
var openapiDoc []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithRegistry sets the Prometheus registry lookup metrics are registered
// on and served from. If not set, a private registry is created.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *API) {
		a.registry = reg
	}
}

// WithClock replaces the clock used for health timestamps and latency.
func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

// New creates a new API instance.
func New(checker Checker, opts ...Option) *API {
	a := &API{
		checker: checker,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}
	a.metrics = newMetricsCollector(a.registry)
	return a
}

// Handler returns the complete relay: CORS, panic recovery, the /api routes,
// /metrics and a JSON 404 for everything else.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(a.Recoverer)
	r.Use(CORS)
	r.Use(SecurityHeaders)
	r.NotFound(endpointNotFound)
	r.MethodNotAllowed(endpointNotFound)

	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	r.Mount("/api", a.Router())

	return r
}

// Router returns a chi.Router with all API routes, to be mounted at /api.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.NotFound(endpointNotFound)
	r.MethodNotAllowed(endpointNotFound)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiDoc)
	})

	notFound := http.HandlerFunc(endpointNotFound)
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/docs",
	}, notFound))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/redoc",
	}, notFound))

	r.Get("/health", a.Health)
	r.Post("/check-number", a.CheckNumber)

	return r
}
