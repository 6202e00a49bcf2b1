package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

// requestLog collects what inner layers learn about a request. Logger wraps
// Auth and the mux, so it cannot see their derived contexts; they write here
// instead.
type requestLog struct {
	route  string
	caller *domain.Caller
}

type requestLogKey struct{}

func requestLogFromCtx(ctx context.Context) *requestLog {
	rl, _ := ctx.Value(requestLogKey{}).(*requestLog)
	return rl
}

func annotateRoute(ctx context.Context, route string) {
	if rl := requestLogFromCtx(ctx); rl != nil {
		rl.route = route
	}
}

func annotateCaller(ctx context.Context, caller domain.Caller) {
	if rl := requestLogFromCtx(ctx); rl != nil {
		rl.caller = &caller
	}
}

// Logger logs one line per request: method, route, status, size, duration,
// request id and the caller when one authenticated. 5xx logs at ERROR;
// 401, 403, 413 and 429 at WARN.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			info := &requestLog{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, info)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if info.route != "" {
				attrs = append(attrs, slog.String("route", info.route))
			}
			switch {
			case info.caller != nil:
				attrs = append(attrs,
					slog.String("user_id", info.caller.UserID.String()),
					slog.String("role", info.caller.Role.String()),
					slog.Int("organizations", len(info.caller.Organizations)),
				)
			default:
				if p, ok := ctxutil.PrincipalFromCtx(r.Context()); ok {
					attrs = append(attrs,
						slog.String("user_id", p.UserID.String()),
						slog.String("role", p.Role),
						slog.Int("organizations", len(p.Organizations)),
					)
				}
			}

			logger.LogAttrs(r.Context(), levelFor(sw.status), "http.request", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusRequestEntityTooLarge, http.StatusTooManyRequests:
		return slog.LevelWarn
	}
	if status >= 500 {
		return slog.LevelError
	}
	return slog.LevelInfo
}

// statusWriter captures the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
