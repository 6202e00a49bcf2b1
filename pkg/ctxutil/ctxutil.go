// Package ctxutil carries request-scoped identity through contexts.
package ctxutil

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type (
	principalKey struct{}
	requestIDKey struct{}
)

// RoleAdmin is the role allowed to manage rules and read audit history.
const RoleAdmin = "admin"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID        uuid.UUID
	Role          string
	Organizations []uuid.UUID
}

// WithPrincipal attaches p to ctx. A principal without a user ID is ignored.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if p.UserID == uuid.Nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromCtx returns the caller attached by WithPrincipal.
func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	p, ok := PrincipalFromCtx(ctx)
	return p.UserID, ok
}

// UserRoleFromCtx returns "" for anonymous requests.
func UserRoleFromCtx(ctx context.Context) string {
	p, _ := PrincipalFromCtx(ctx)
	return p.Role
}

func IsAdminCtx(ctx context.Context) bool {
	return UserRoleFromCtx(ctx) == RoleAdmin
}

// OrganizationsFromCtx returns nil for anonymous requests.
func OrganizationsFromCtx(ctx context.Context) []uuid.UUID {
	p, _ := PrincipalFromCtx(ctx)
	return p.Organizations
}

// ActsFor reports whether the caller in ctx represents organization org.
func ActsFor(ctx context.Context, org uuid.UUID) bool {
	return slices.Contains(OrganizationsFromCtx(ctx), org)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns "" when no request ID was assigned.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
