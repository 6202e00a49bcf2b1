package validation

import (
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// stateNone is the lifecycle state of a record that has never been saved.
const stateNone = "none"

// publishingEvents lists, per requested status, the current statuses it may
// be requested from. Modified and OldPublished are never a source.
var publishingEvents = fsm.Events{
	{
		Name: domain.PublishingStatusDraft.String(),
		Src:  []string{stateNone, domain.PublishingStatusDraft.String()},
		Dst:  domain.PublishingStatusDraft.String(),
	},
	{
		Name: domain.PublishingStatusPublished.String(),
		Src: []string{
			stateNone,
			domain.PublishingStatusDraft.String(),
			domain.PublishingStatusPublished.String(),
			domain.PublishingStatusArchived.String(),
		},
		Dst: domain.PublishingStatusPublished.String(),
	},
	{
		Name: domain.PublishingStatusModified.String(),
		Src:  []string{domain.PublishingStatusPublished.String(), domain.PublishingStatusArchived.String()},
		Dst:  domain.PublishingStatusModified.String(),
	},
	{
		Name: domain.PublishingStatusArchived.String(),
		Src:  []string{domain.PublishingStatusPublished.String(), domain.PublishingStatusArchived.String()},
		Dst:  domain.PublishingStatusArchived.String(),
	},
}

// CheckPublishing validates a requested status change of the record at root.
// current is the status of the previously saved version ("" for a new
// record), next the requested status ("" when unspecified).
func CheckPublishing(root Path, current, next domain.PublishingStatus, validFrom, validTo *time.Time) []Violation {
	current, next = current.Normalize(), next.Normalize()
	path := root.Field("PublishingStatus")
	var out []Violation

	out = append(out, checkTimedPublishing(root, next, validFrom, validTo)...)

	if next.IsSpecified() && !next.IsValid() {
		return append(out, violation(path, KindInvalidStateTransition,
			fmt.Sprintf("unknown publishing status %q", next)))
	}

	switch current {
	case domain.PublishingStatusModified, domain.PublishingStatusOldPublished:
		return append(out, violation(path, KindInvalidStateTransition,
			fmt.Sprintf("a record in status %s cannot be updated", current)))
	case domain.PublishingStatusArchived:
		if !next.IsSpecified() {
			return append(out, violation(path, KindInvalidStateTransition,
				"publishing status is required when updating an archived record"))
		}
	}

	if !next.IsSpecified() {
		return out
	}

	state := stateNone
	if current.IsSpecified() {
		state = current.String()
	}
	machine := fsm.NewFSM(state, publishingEvents, fsm.Callbacks{})
	if !machine.Can(next.String()) {
		out = append(out, violation(path, KindInvalidStateTransition,
			fmt.Sprintf("cannot change publishing status from %s to %s", state, next)))
	}
	return out
}

// checkTimedPublishing enforces the scheduled publishing rules: a record with
// ValidFrom is saved unpublished until the date arrives, a record with only
// ValidTo must be published now, and the window must not be empty.
func checkTimedPublishing(root Path, next domain.PublishingStatus, validFrom, validTo *time.Time) []Violation {
	path := root.Field("PublishingStatus")
	var out []Violation
	switch {
	case validFrom != nil:
		if next != domain.PublishingStatusDraft && next != domain.PublishingStatusModified {
			out = append(out, violation(path, KindInvalidStateTransition,
				"timed publishing with validFrom requires status Draft or Modified"))
		}
		if validTo != nil && !dateBefore(*validFrom, *validTo) {
			out = append(out, violation(root.Field("ValidTo"), KindStructuralConflict,
				"validTo must be later than validFrom"))
		}
	case validTo != nil:
		if next != domain.PublishingStatusPublished {
			out = append(out, violation(path, KindInvalidStateTransition,
				"timed archiving with validTo requires status Published"))
		}
	}
	return out
}

// dateBefore compares calendar dates, ignoring the time of day.
func dateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Before(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}
