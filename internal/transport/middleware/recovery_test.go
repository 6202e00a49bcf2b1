package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
)

const validateRoute = "/api/{version}/{kind}/validate"

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	m := metrics.New(prometheus.NewRegistry())
	called := false

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	Recovery(logger, m, validateRoute)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v11/service/validate", nil))

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := testutil.ToFloat64(m.Panics.WithLabelValues(validateRoute)); got != 0 {
		t.Errorf("expected no panics counted, got %v", got)
	}
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
	m := metrics.New(prometheus.NewRegistry())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil snapshot for organization")
	})

	rec := httptest.NewRecorder()
	Recovery(logger, m, validateRoute)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v11/organization/validate", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("expected generic error, got %q", body["error"])
	}

	logOutput := buf.String()
	for _, want := range []string{"panic recovered", "nil snapshot for organization", validateRoute} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("expected log to contain %q, got %q", want, logOutput)
		}
	}
	if got := testutil.ToFloat64(m.Panics.WithLabelValues(validateRoute)); got != 1 {
		t.Errorf("expected 1 panic counted, got %v", got)
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	Recovery(logger, nil, RouteGlobal)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Error("expected panic to propagate")
}
