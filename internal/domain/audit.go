package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationAudit records the outcome of one validation request.
type ValidationAudit struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	EntityKind     EntityKind
	RecordID       *uuid.UUID
	APIVersion     int
	Valid          bool
	ViolationCount int
	// Kinds counts violations per kind.
	Kinds     map[string]int
	CreatedAt time.Time
}
