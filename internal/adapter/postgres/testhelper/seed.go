package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// UniqueCode returns a short unique string for generating non-conflicting test data.
func UniqueCode(prefix string) string {
	return prefix + uuid.New().String()[:8]
}

func exec(t *testing.T, pool *pgxpool.Pool, what, sql string, args ...any) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), sql, args...); err != nil {
		t.Fatalf("testhelper: %s: %v", what, err)
	}
}

// SeedCode inserts code into one of the single-column code tables
// (languages, countries, municipalities, postal_codes, dial_codes).
func SeedCode(t *testing.T, pool *pgxpool.Pool, table, code string) {
	t.Helper()
	exec(t, pool, "SeedCode "+table,
		`INSERT INTO `+table+` (code) VALUES ($1) ON CONFLICT DO NOTHING`, code)
}

// SeedArea inserts an area code of the given sub-area type.
func SeedArea(t *testing.T, pool *pgxpool.Pool, subType domain.SubAreaType, code string) {
	t.Helper()
	exec(t, pool, "SeedArea",
		`INSERT INTO areas (sub_type, code) VALUES ($1, $2) ON CONFLICT DO NOTHING`, string(subType), code)
}

// SeedTerm inserts a taxonomy term into vocabulary.
func SeedTerm(t *testing.T, pool *pgxpool.Pool, vocabulary, code string) {
	t.Helper()
	exec(t, pool, "SeedTerm",
		`INSERT INTO taxonomy_terms (vocabulary, code) VALUES ($1, $2) ON CONFLICT DO NOTHING`, vocabulary, code)
}

// SeedOrganization inserts a published organization with the given OID.
// Empty fields of org get defaults; the stored info is returned.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool, org domain.OrganizationInfo, oid string) domain.OrganizationInfo {
	t.Helper()
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	if org.Type == "" {
		org.Type = domain.OrganizationTypeMunicipality
	}
	if org.PublishingStatus == "" {
		org.PublishingStatus = domain.PublishingStatusPublished
	}
	if org.PublishedLanguages == nil {
		org.PublishedLanguages = []string{"fi"}
	}
	var oidArg any
	if oid != "" {
		oidArg = oid
	}
	exec(t, pool, "SeedOrganization",
		`INSERT INTO organizations (id, type, oid, publishing_status, published_languages)
		 VALUES ($1, $2, $3, $4, $5)`,
		org.ID, string(org.Type), oidArg, string(org.PublishingStatus), org.PublishedLanguages)
	return org
}

// SeedService inserts a published service owned by organizationIDs.
func SeedService(t *testing.T, pool *pgxpool.Pool, organizationIDs ...uuid.UUID) domain.ServiceInfo {
	t.Helper()
	svc := domain.ServiceInfo{ID: uuid.New(), OrganizationIDs: organizationIDs}
	if svc.OrganizationIDs == nil {
		svc.OrganizationIDs = []uuid.UUID{}
	}
	exec(t, pool, "SeedService",
		`INSERT INTO services (id, organization_ids, publishing_status) VALUES ($1, $2, $3)`,
		svc.ID, svc.OrganizationIDs, string(domain.PublishingStatusPublished))
	return svc
}

// SeedChannel inserts a published channel owned by organizationID.
func SeedChannel(t *testing.T, pool *pgxpool.Pool, kind domain.ChannelKind, organizationID uuid.UUID, visibleForAll bool) domain.ChannelInfo {
	t.Helper()
	ch := domain.ChannelInfo{
		ID:              uuid.New(),
		Kind:            kind,
		OrganizationID:  organizationID,
		IsVisibleForAll: visibleForAll,
	}
	exec(t, pool, "SeedChannel",
		`INSERT INTO service_channels (id, kind, organization_id, is_visible_for_all, publishing_status)
		 VALUES ($1, $2, $3, $4, $5)`,
		ch.ID, string(ch.Kind), ch.OrganizationID, ch.IsVisibleForAll, string(domain.PublishingStatusPublished))
	return ch
}

// SeedGeneralDescription inserts gd, generating an ID when it is empty.
func SeedGeneralDescription(t *testing.T, pool *pgxpool.Pool, gd domain.GeneralDescriptionInfo) domain.GeneralDescriptionInfo {
	t.Helper()
	if gd.ID == uuid.Nil {
		gd.ID = uuid.New()
	}
	if gd.Type == "" {
		gd.Type = domain.ServiceTypeService
	}
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	gd.TargetGroups = orEmpty(gd.TargetGroups)
	gd.ServiceClasses = orEmpty(gd.ServiceClasses)
	gd.OntologyTerms = orEmpty(gd.OntologyTerms)
	exec(t, pool, "SeedGeneralDescription",
		`INSERT INTO general_descriptions (id, type, target_groups, service_classes, ontology_terms)
		 VALUES ($1, $2, $3, $4, $5)`,
		gd.ID, string(gd.Type), gd.TargetGroups, gd.ServiceClasses, gd.OntologyTerms)
	return gd
}

// SeedName records a published name of an entity.
func SeedName(t *testing.T, pool *pgxpool.Pool, kind domain.EntityKind, entityID, organizationID uuid.UUID, language, name string) {
	t.Helper()
	exec(t, pool, "SeedName",
		`INSERT INTO entity_names (entity_kind, entity_id, organization_id, language, name)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(kind), entityID, organizationID, language, name)
}

// SeedConnection links a service and a channel.
func SeedConnection(t *testing.T, pool *pgxpool.Pool, serviceID, channelID uuid.UUID, asti bool) {
	t.Helper()
	exec(t, pool, "SeedConnection",
		`INSERT INTO service_channel_connections (service_id, channel_id, is_asti) VALUES ($1, $2, $3)`,
		serviceID, channelID, asti)
}

// SeedRecordVersion stores snap as the latest saved version of a record.
func SeedRecordVersion(t *testing.T, pool *pgxpool.Pool, kind domain.EntityKind, snap domain.Snapshot) {
	t.Helper()
	names, descriptions := snap.Names, snap.Descriptions
	if names == nil {
		names = domain.LocalizedList{}
	}
	if descriptions == nil {
		descriptions = domain.LocalizedList{}
	}
	langs := snap.AvailableLanguages
	if langs == nil {
		langs = []string{}
	}
	exec(t, pool, "SeedRecordVersion",
		`INSERT INTO record_versions (entity_kind, entity_id, publishing_status, available_languages, names, descriptions)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(kind), snap.ID, string(snap.PublishingStatus), langs, names, descriptions)
}
