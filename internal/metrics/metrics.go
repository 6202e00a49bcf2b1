package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation outcomes.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics provides observability for record validation and the HTTP surface.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Validation passes by entity and outcome
	Validations *prometheus.CounterVec

	// Violations by entity and kind
	Violations *prometheus.CounterVec

	// Validation pass latency by entity
	ValidationLatency *prometheus.HistogramVec

	// HTTP requests by method, route and status
	HTTPRequests *prometheus.CounterVec

	HTTPLatency *prometheus.HistogramVec

	// Recovered handler panics by route
	Panics *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_validations_total",
			Help: "Total validation passes by entity and outcome",
		}, []string{"entity", "outcome"}),

		Violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_validation_violations_total",
			Help: "Total violations reported by entity and kind",
		}, []string{"entity", "kind"}),

		ValidationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_validation_duration_seconds",
			Help:    "Duration of a validation pass including reference lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"entity"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		Panics: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_http_panics_total",
			Help: "Total handler panics recovered by route",
		}, []string{"route"}),
	}
}

// ObserveValidation records one validation pass.
func (m *Metrics) ObserveValidation(entity, outcome string, d time.Duration) {
	if m != nil {
		m.Validations.WithLabelValues(entity, outcome).Inc()
		m.ValidationLatency.WithLabelValues(entity).Observe(d.Seconds())
	}
}

// AddViolations records n violations of kind.
func (m *Metrics) AddViolations(entity, kind string, n int) {
	if m != nil && n > 0 {
		m.Violations.WithLabelValues(entity, kind).Add(float64(n))
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

// IncPanic records one recovered panic.
func (m *Metrics) IncPanic(route string) {
	if m != nil {
		m.Panics.WithLabelValues(route).Inc()
	}
}
