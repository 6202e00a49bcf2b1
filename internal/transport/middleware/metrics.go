package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
)

// Instrument records request count and latency under the route label and
// names the route in the request log. It wraps single routes so the label is
// the registered pattern, not the raw path.
func Instrument(m *metrics.Metrics, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			annotateRoute(r.Context(), route)
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			m.ObserveHTTP(r.Method, route, sw.status, time.Since(start))
		})
	}
}
