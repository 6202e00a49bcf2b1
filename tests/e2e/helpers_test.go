//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/reference"
	registryrepo "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/registry"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/snapshot"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/heartmarshall/serviceregistry-backend/internal/auth"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/service/registry"
	"github.com/heartmarshall/serviceregistry-backend/internal/transport/middleware"
	"github.com/heartmarshall/serviceregistry-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// 3. Repositories.
	refRepo := reference.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	// 5. Service.
	svc := registry.NewService(
		logger,
		config.ValidationConfig{
			MinAPIVersion:               7,
			MaxAPIVersion:               11,
			MaxServiceClasses:           4,
			MaxOntologyTerms:            10,
			LimitsFromVersion:           7,
			SupportLanguagesFromVersion: 9,
			CitizensTargetGroupPrefix:   "KR1",
			BusinessesTargetGroupPrefix: "KR2",
		},
		registry.Lookups{Codes: refRepo, Taxonomy: refRepo, Registry: registryrepo.New(pool)},
		snapshot.New(pool),
		audit.New(pool),
		txm,
		m,
	)

	// 6. Router.
	handler := rest.NewRouter(rest.RouterDeps{
		Validation:     rest.NewValidationHandler(svc, 1<<20, logger),
		Admin:          rest.NewAdminHandler(svc, logger),
		Health:         rest.NewHealthHandler(pool, refRepo, "test-version"),
		Auth:           middleware.Auth(jwtMgr),
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORS:           config.CORSConfig{AllowedOrigins: "*"},
		Logger:         logger,
	})

	// 7. httptest server.
	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	// Language codes used by the fixtures.
	for _, lang := range []string{"fi", "sv", "en"} {
		testhelper.SeedCode(t, pool, "languages", lang)
	}

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// tokenFor returns a valid access token for a fresh caller with role.
func (ts *testServer) tokenFor(t *testing.T, role domain.UserRole, orgs ...uuid.UUID) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(domain.Caller{UserID: userID, Role: role, Organizations: orgs})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token, userID
}

// do sends a request with an optional JSON body and bearer token and decodes
// the JSON response into out when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// validationResult mirrors the body of a validation response.
type validationResult struct {
	Valid  bool `json:"valid"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
		Kind    string `json:"kind"`
	} `json:"errors"`
}

func (r validationResult) fields() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Field
	}
	return out
}

// newOrganization returns a draft organization that passes validation once
// the fixture languages are seeded.
func newOrganization(name string) *domain.Organization {
	return &domain.Organization{
		ID:   uuid.New(),
		Type: domain.OrganizationTypeOrganization,
		Names: domain.LocalizedList{
			{Language: "fi", Type: domain.NameTypeName, Value: name},
		},
		Descriptions: domain.LocalizedList{
			{Language: "fi", Type: domain.DescriptionTypeSummary, Value: "Yhteenveto " + name},
		},
		RecordMeta: domain.RecordMeta{PublishingStatus: domain.PublishingStatusDraft},
	}
}
