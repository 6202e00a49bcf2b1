package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/auth"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

const (
	unauthorizedBody = `{"error":"unauthorized"}` + "\n"
	tokenExpiredBody = `{"error":"token expired"}` + "\n"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (domain.Caller, error)
}

// Auth resolves the bearer token into the caller identity. Requests without
// a token pass through anonymously and handlers decide whether that is
// allowed. A token that fails validation is rejected here with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := validator.ValidateAccessToken(token)
			if err != nil {
				rejectToken(w, err)
				return
			}

			annotateCaller(r.Context(), caller)
			ctx := ctxutil.WithPrincipal(r.Context(), ctxutil.Principal{
				UserID:        caller.UserID,
				Role:          caller.Role.String(),
				Organizations: caller.Organizations,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rejectToken answers per RFC 6750 so clients can tell a refresh from a
// hard failure.
func rejectToken(w http.ResponseWriter, err error) {
	challenge, body := `Bearer error="invalid_token"`, unauthorizedBody
	if errors.Is(err, auth.ErrTokenExpired) {
		challenge += `, error_description="token expired"`
		body = tokenExpiredBody
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, http.StatusUnauthorized, body)
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
