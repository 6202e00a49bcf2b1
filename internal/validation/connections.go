package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// checkServiceConnections validates the channel links of a service.
func checkServiceConnections(ctx context.Context, env Env, path Path, serviceID uuid.UUID, links []domain.Connection) ([]Violation, error) {
	var out []Violation
	for i, link := range links {
		lp := path.Index(i)
		if link.TargetID == uuid.Nil {
			out = append(out, violation(lp.Field("Id"), KindStructuralConflict, "service channel id is required"))
			continue
		}
		ch, err := env.Registry.Channel(ctx, link.TargetID)
		vs, err := found(lp.Field("Id"), "service channel", link.TargetID, err)
		if err != nil {
			return nil, err
		}
		if len(vs) > 0 {
			out = append(out, vs...)
			continue
		}

		if !link.IsASTI && !env.Caller.IsAdmin() && !ch.IsVisibleForAll && !env.Caller.OwnsOrganization(ch.OrganizationID) {
			out = append(out, uniqueViolation(lp.Field("Id"), KindVisibilityDenied,
				fmt.Sprintf("service channel %s is not visible to the caller", ch.ID)))
		}

		vs, err = checkConnection(ctx, env, lp, link, ch.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)

		vs, err = checkASTIOverwrite(ctx, env, lp, link, serviceID, link.TargetID)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// checkChannelConnections validates the service links of a channel.
func checkChannelConnections(ctx context.Context, env Env, path Path, channelID uuid.UUID, kind domain.ChannelKind, links []domain.Connection) ([]Violation, error) {
	var out []Violation
	for i, link := range links {
		lp := path.Index(i)
		if link.TargetID == uuid.Nil {
			out = append(out, violation(lp.Field("Id"), KindStructuralConflict, "service id is required"))
			continue
		}
		svc, err := env.Registry.Service(ctx, link.TargetID)
		vs, err := found(lp.Field("Id"), "service", link.TargetID, err)
		if err != nil {
			return nil, err
		}
		if len(vs) > 0 {
			out = append(out, vs...)
			continue
		}

		if !link.IsASTI && !env.Caller.IsAdmin() && !ownsAny(env.Caller, svc.OrganizationIDs) {
			out = append(out, uniqueViolation(lp.Field("Id"), KindVisibilityDenied,
				fmt.Sprintf("service %s is not visible to the caller", svc.ID)))
		}

		vs, err = checkConnection(ctx, env, lp, link, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)

		vs, err = checkASTIOverwrite(ctx, env, lp, link, link.TargetID, channelID)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// checkConnection validates the payload of one link against the kind of
// the channel it involves.
func checkConnection(ctx context.Context, env Env, path Path, link domain.Connection, kind domain.ChannelKind) ([]Violation, error) {
	location := kind == domain.ChannelKindServiceLocation
	var out []Violation

	if link.IsASTI && !location {
		out = append(out, violation(path.Field("IsASTIConnection"), KindStructuralConflict,
			"ASTI connections are only allowed for service location channels"))
	}
	if link.ChargeType != "" && !link.ChargeType.IsValid() {
		out = append(out, violation(path.Field("ServiceChargeType"), KindStructuralConflict,
			fmt.Sprintf("unknown charge type %q", link.ChargeType)))
	}

	if len(link.ServiceHours) > 0 {
		if location {
			out = append(out, CheckServiceHours(path.Field("ServiceHours"), link.ServiceHours)...)
		} else {
			out = append(out, violation(path.Field("ServiceHours"), KindStructuralConflict,
				"service hours are only allowed for service location channels"))
		}
	}

	if !link.ContactDetails.IsEmpty() {
		if !location {
			return append(out, violation(path.Field("ContactDetails"), KindStructuralConflict,
				"contact details are only allowed for service location channels")), nil
		}
		vs, err := checkContactDetails(ctx, env, path.Field("ContactDetails"), link.ContactDetails)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// checkASTIOverwrite keeps regular links from replacing an existing ASTI
// connection. New records have no connections yet.
func checkASTIOverwrite(ctx context.Context, env Env, path Path, link domain.Connection, serviceID, channelID uuid.UUID) ([]Violation, error) {
	if link.IsASTI || serviceID == uuid.Nil || channelID == uuid.Nil {
		return nil, nil
	}
	exists, err := env.Registry.ASTIConnectionExists(ctx, serviceID, channelID)
	if err != nil {
		return nil, fmt.Errorf("lookup ASTI connection: %w", err)
	}
	if exists {
		return []Violation{violation(path.Field("IsASTIConnection"), KindStructuralConflict,
			"an ASTI connection cannot be replaced by a regular connection")}, nil
	}
	return nil, nil
}

func ownsAny(c domain.Caller, ids []uuid.UUID) bool {
	for _, id := range ids {
		if c.OwnsOrganization(id) {
			return true
		}
	}
	return false
}
