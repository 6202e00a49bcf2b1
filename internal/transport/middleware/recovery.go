package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

// RouteGlobal labels panics caught outside any registered route.
const RouteGlobal = "global"

const panicBody = `{"error":"internal server error"}` + "\n"

// Recovery turns a handler panic into a 500 with the API's JSON error body.
// The panic is logged with its stack and counted under route.
// http.ErrAbortHandler is re-raised so the server aborts the response.
func Recovery(logger *slog.Logger, m *metrics.Metrics, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				m.IncPanic(route)
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("route", route),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)

				writeError(w, http.StatusInternalServerError, panicBody)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
