package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/config"
)

// exposedHeaders are readable by browser clients: the request id for support
// tickets and Retry-After for rate-limited validation calls.
var exposedHeaders = strings.Join([]string{RequestIDHeader, "Retry-After"}, ", ")

// CORS returns middleware that handles Cross-Origin Resource Sharing for
// browser-based registry editors. Preflight OPTIONS requests are answered
// directly with 204.
func CORS(cfg config.CORSConfig) Middleware {
	origins := parseOrigins(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")
			if origin := r.Header.Get("Origin"); origin != "" && origins.allows(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type originSet struct {
	any   bool
	exact map[string]struct{}
}

func parseOrigins(list string) originSet {
	s := originSet{exact: make(map[string]struct{})}
	for _, o := range strings.Split(list, ",") {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			s.any = true
		default:
			s.exact[o] = struct{}{}
		}
	}
	return s
}

func (s originSet) allows(origin string) bool {
	if s.any {
		return true
	}
	_, ok := s.exact[origin]
	return ok
}
