package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "uuid reused", incoming: uuid.NewString(), keep: true},
		{name: "integration trace id reused", incoming: "ptv-sync/2026-03-01/0042", keep: true},
		{name: "missing", incoming: ""},
		{name: "too long", incoming: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "embedded newline", incoming: "abc\ninjected=1"},
		{name: "space", incoming: "abc def"},
		{name: "non-ascii", incoming: "pyyntö-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var inCtx string
			h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inCtx = ctxutil.RequestIDFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v11/service/validate", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			echoed := rec.Header().Get(RequestIDHeader)
			assert.Equal(t, inCtx, echoed, "context and response header must agree")
			if tt.keep {
				assert.Equal(t, tt.incoming, echoed)
				return
			}
			_, err := uuid.Parse(echoed)
			assert.NoError(t, err, "expected a generated UUID, got %q", echoed)
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	seen := make(map[string]bool)
	for range 20 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
		id := rec.Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "duplicate request id %q", id)
		seen[id] = true
	}
}
