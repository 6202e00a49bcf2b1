package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

var (
	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other rejection: bad signature, wrong
	// issuer, malformed claims.
	ErrTokenInvalid = errors.New("invalid token")
)

// JWTManager issues and validates caller access tokens (HS256). A token
// carries the caller's role and the organizations the caller acts for.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	leeway    time.Duration
	now       func() time.Time
}

// Option tunes a JWTManager.
type Option func(*JWTManager)

// WithLeeway tolerates clock skew between the issuer and this service.
func WithLeeway(d time.Duration) Option {
	return func(m *JWTManager) { m.leeway = d }
}

func withClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.now = now }
}

// NewJWTManager expects a secret of at least 32 bytes; config validation
// enforces it.
func NewJWTManager(secret, issuer string, accessTTL time.Duration, opts ...Option) *JWTManager {
	m := &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role          string   `json:"role,omitempty"`
	Organizations []string `json:"orgs,omitempty"`
}

func (c accessClaims) caller() (domain.Caller, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("subject: %w", err)
	}
	role := domain.UserRole(c.Role)
	if !role.IsValid() {
		return domain.Caller{}, fmt.Errorf("role %q", c.Role)
	}
	orgs := make([]uuid.UUID, len(c.Organizations))
	for i, raw := range c.Organizations {
		if orgs[i], err = uuid.Parse(raw); err != nil {
			return domain.Caller{}, fmt.Errorf("organization %q: %w", raw, err)
		}
	}
	return domain.Caller{UserID: userID, Role: role, Organizations: orgs}, nil
}

// GenerateAccessToken signs a token for caller, valid for the access TTL.
func (m *JWTManager) GenerateAccessToken(caller domain.Caller) (string, error) {
	now := m.now()
	orgs := make([]string, len(caller.Organizations))
	for i, id := range caller.Organizations {
		orgs[i] = id.String()
	}

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   caller.UserID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		Role:          caller.Role.String(),
		Organizations: orgs,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken returns the caller a token was issued for. Errors wrap
// ErrTokenExpired or ErrTokenInvalid.
func (m *JWTManager) ValidateAccessToken(raw string) (domain.Caller, error) {
	if raw == "" {
		return domain.Caller{}, fmt.Errorf("%w: empty", ErrTokenInvalid)
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Caller{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case err != nil:
		return domain.Caller{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	caller, err := claims.caller()
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return caller, nil
}
