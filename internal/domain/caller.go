package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Caller is the authenticated API client a request is evaluated for.
type Caller struct {
	UserID        uuid.UUID
	Role          UserRole
	Organizations []uuid.UUID
}

// IsAdmin reports whether the caller bypasses ownership and visibility rules.
func (c Caller) IsAdmin() bool { return c.Role.IsAdmin() }

// OwnsOrganization reports whether id is one of the caller's organizations.
func (c Caller) OwnsOrganization(id uuid.UUID) bool {
	return slices.Contains(c.Organizations, id)
}
