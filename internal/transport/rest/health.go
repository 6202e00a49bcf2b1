package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// Health statuses.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// referenceChecker reports whether the code lists have been seeded. Without
// them every record fails its language lookups.
type referenceChecker interface {
	Loaded(ctx context.Context) (bool, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	refs    referenceChecker
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, refs referenceChecker, version string) *HealthHandler {
	return &HealthHandler{db: db, refs: refs, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 only when the database answers and the
// reference data is loaded, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())

	status := statusOK
	for _, c := range components {
		if c.Status != statusOK {
			status = statusDown
		}
	}

	code := http.StatusOK
	if status != statusOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component status and version.
// Missing reference data degrades the service; a database outage takes it down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())

	status := statusOK
	switch {
	case components["database"].Status != statusOK:
		status = statusDown
	case components["reference_data"].Status != statusOK:
		status = statusDegraded
	}

	code := http.StatusOK
	if status == statusDown {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) map[string]CompStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 2)

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: statusDown}
		components["reference_data"] = CompStatus{Status: statusDown, Detail: "database unavailable"}
		return components
	}
	components["database"] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}

	loaded, err := h.refs.Loaded(ctx)
	switch {
	case err != nil:
		components["reference_data"] = CompStatus{Status: statusDown, Detail: "lookup failed"}
	case !loaded:
		components["reference_data"] = CompStatus{Status: statusDown, Detail: "code lists not seeded"}
	default:
		components["reference_data"] = CompStatus{Status: statusOK}
	}
	return components
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
