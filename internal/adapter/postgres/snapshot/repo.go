// Package snapshot loads the latest saved version of a registry record,
// the baseline for language and lifecycle rules.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type versionRow struct {
	EntityID           uuid.UUID            `db:"entity_id"`
	PublishingStatus   string               `db:"publishing_status"`
	AvailableLanguages []string             `db:"available_languages"`
	Names              domain.LocalizedList `db:"names"`
	Descriptions       domain.LocalizedList `db:"descriptions"`
}

// Latest returns the saved version of the record, or nil when the record
// has never been saved.
func (r *Repo) Latest(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (*domain.Snapshot, error) {
	query, args, err := postgres.Builder.
		Select("entity_id", "publishing_status", "available_languages", "names", "descriptions").
		From("record_versions").
		Where(sq.Eq{"entity_id": id, "entity_kind": string(kind)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query: %w", err)
	}

	var row versionRow
	err = pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...)
	if pgxscan.NotFound(err) {
		return nil, nil
	}
	if err != nil {
		err = postgres.MapError(err, "record_version", id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.Snapshot{
		ID:                 row.EntityID,
		AvailableLanguages: row.AvailableLanguages,
		PublishingStatus:   domain.PublishingStatus(row.PublishingStatus),
		Names:              row.Names,
		Descriptions:       row.Descriptions,
	}, nil
}
