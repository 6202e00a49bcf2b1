// Package registry reads existing registry records that submitted records
// refer to.
package registry

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// Repo implements the registry lookup of the validation engine.
type Repo struct {
	db postgres.Querier
}

// New creates a new registry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type organizationRow struct {
	ID                 uuid.UUID `db:"id"`
	Type               string    `db:"type"`
	PublishingStatus   string    `db:"publishing_status"`
	PublishedLanguages []string  `db:"published_languages"`
}

func (row organizationRow) toDomain() domain.OrganizationInfo {
	return domain.OrganizationInfo{
		ID:                 row.ID,
		Type:               domain.OrganizationType(row.Type),
		PublishingStatus:   domain.PublishingStatus(row.PublishingStatus),
		PublishedLanguages: row.PublishedLanguages,
	}
}

var organizationColumns = []string{"id", "type", "publishing_status", "published_languages"}

// Organization returns the organization with the given id.
func (r *Repo) Organization(ctx context.Context, id uuid.UUID) (domain.OrganizationInfo, error) {
	var row organizationRow
	err := r.get(ctx, &row, postgres.Builder.
		Select(organizationColumns...).
		From("organizations").
		Where(sq.Eq{"id": id}))
	if err != nil {
		return domain.OrganizationInfo{}, postgres.MapError(err, "organization", id)
	}
	return row.toDomain(), nil
}

// OrganizationByOID returns the organization registered with oid.
func (r *Repo) OrganizationByOID(ctx context.Context, oid string) (domain.OrganizationInfo, error) {
	var row organizationRow
	err := r.get(ctx, &row, postgres.Builder.
		Select(organizationColumns...).
		From("organizations").
		Where(sq.Eq{"oid": oid}))
	if err != nil {
		return domain.OrganizationInfo{}, postgres.MapError(err, "organization", oid)
	}
	return row.toDomain(), nil
}

// Service returns the service with the given id.
func (r *Repo) Service(ctx context.Context, id uuid.UUID) (domain.ServiceInfo, error) {
	var row struct {
		ID              uuid.UUID   `db:"id"`
		OrganizationIDs []uuid.UUID `db:"organization_ids"`
	}
	err := r.get(ctx, &row, postgres.Builder.
		Select("id", "organization_ids").
		From("services").
		Where(sq.Eq{"id": id}))
	if err != nil {
		return domain.ServiceInfo{}, postgres.MapError(err, "service", id)
	}
	return domain.ServiceInfo{ID: row.ID, OrganizationIDs: row.OrganizationIDs}, nil
}

// Channel returns the service channel with the given id.
func (r *Repo) Channel(ctx context.Context, id uuid.UUID) (domain.ChannelInfo, error) {
	var row struct {
		ID              uuid.UUID `db:"id"`
		Kind            string    `db:"kind"`
		OrganizationID  uuid.UUID `db:"organization_id"`
		IsVisibleForAll bool      `db:"is_visible_for_all"`
	}
	err := r.get(ctx, &row, postgres.Builder.
		Select("id", "kind", "organization_id", "is_visible_for_all").
		From("service_channels").
		Where(sq.Eq{"id": id}))
	if err != nil {
		return domain.ChannelInfo{}, postgres.MapError(err, "service_channel", id)
	}
	return domain.ChannelInfo{
		ID:              row.ID,
		Kind:            domain.ChannelKind(row.Kind),
		OrganizationID:  row.OrganizationID,
		IsVisibleForAll: row.IsVisibleForAll,
	}, nil
}

// GeneralDescription returns the general description with the given id.
func (r *Repo) GeneralDescription(ctx context.Context, id uuid.UUID) (domain.GeneralDescriptionInfo, error) {
	var row struct {
		ID             uuid.UUID `db:"id"`
		Type           string    `db:"type"`
		TargetGroups   []string  `db:"target_groups"`
		ServiceClasses []string  `db:"service_classes"`
		OntologyTerms  []string  `db:"ontology_terms"`
	}
	err := r.get(ctx, &row, postgres.Builder.
		Select("id", "type", "target_groups", "service_classes", "ontology_terms").
		From("general_descriptions").
		Where(sq.Eq{"id": id}))
	if err != nil {
		return domain.GeneralDescriptionInfo{}, postgres.MapError(err, "general_description", id)
	}
	return domain.GeneralDescriptionInfo{
		ID:             row.ID,
		Type:           domain.ServiceType(row.Type),
		TargetGroups:   row.TargetGroups,
		ServiceClasses: row.ServiceClasses,
		OntologyTerms:  row.OntologyTerms,
	}, nil
}

// NameInUse reports whether another record of kind in the organization has
// name in language. Names compare case-insensitively after trimming.
func (r *Repo) NameInUse(ctx context.Context, kind domain.EntityKind, organizationID uuid.UUID, language, name string, exclude uuid.UUID) (bool, error) {
	return r.exists(ctx, "entity_names", postgres.Builder.
		Select("1").
		From("entity_names").
		Where(sq.Eq{
			"entity_kind":     string(kind),
			"organization_id": organizationID,
			"language":        language,
		}).
		Where("lower(btrim(name)) = lower(btrim(?))", name).
		Where(sq.NotEq{"entity_id": exclude}).
		Limit(1))
}

// ASTIConnectionExists reports whether the service and channel are already
// linked by an ASTI connection.
func (r *Repo) ASTIConnectionExists(ctx context.Context, serviceID, channelID uuid.UUID) (bool, error) {
	return r.exists(ctx, "service_channel_connections", postgres.Builder.
		Select("1").
		From("service_channel_connections").
		Where(sq.Eq{
			"channel_id": channelID,
			"is_asti":    true,
			"service_id": serviceID,
		}).
		Limit(1))
}

func (r *Repo) get(ctx context.Context, dst any, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), dst, query, args...)
	if pgxscan.NotFound(err) {
		return pgx.ErrNoRows
	}
	return err
}

func (r *Repo) exists(ctx context.Context, table string, b sq.SelectBuilder) (bool, error) {
	return postgres.Exists(ctx, r.db, table, b)
}
