// Package audit persists the outcome of validation requests.
// Records are append-only; DeleteOlderThan enforces retention.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

const table = "validation_audit"

var columns = []string{
	"id", "user_id", "entity_kind", "record_id", "api_version",
	"valid", "violation_count", "kinds", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type auditRow struct {
	ID             uuid.UUID      `db:"id"`
	UserID         uuid.UUID      `db:"user_id"`
	EntityKind     string         `db:"entity_kind"`
	RecordID       *uuid.UUID     `db:"record_id"`
	APIVersion     int            `db:"api_version"`
	Valid          bool           `db:"valid"`
	ViolationCount int            `db:"violation_count"`
	Kinds          map[string]int `db:"kinds"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (row auditRow) toDomain() domain.ValidationAudit {
	return domain.ValidationAudit{
		ID:             row.ID,
		UserID:         row.UserID,
		EntityKind:     domain.EntityKind(row.EntityKind),
		RecordID:       row.RecordID,
		APIVersion:     row.APIVersion,
		Valid:          row.Valid,
		ViolationCount: row.ViolationCount,
		Kinds:          row.Kinds,
		CreatedAt:      row.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns it as persisted.
// A zero ID or CreatedAt is filled in.
func (r *Repo) Create(ctx context.Context, rec domain.ValidationAudit) (domain.ValidationAudit, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	kinds := rec.Kinds
	if kinds == nil {
		kinds = map[string]int{}
	}

	query, args, err := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, string(rec.EntityKind), rec.RecordID, rec.APIVersion,
			rec.Valid, rec.ViolationCount, kinds, rec.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.ValidationAudit{}, fmt.Errorf("build %s insert: %w", table, err)
	}

	var row auditRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return domain.ValidationAudit{}, postgres.MapError(err, table, rec.ID)
	}
	return row.toDomain(), nil
}

// Log creates an audit record without returning it.
func (r *Repo) Log(ctx context.Context, rec domain.ValidationAudit) error {
	_, err := r.Create(ctx, rec)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByRecord returns the validation history of a record, newest first.
func (r *Repo) ListByRecord(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error) {
	return r.list(ctx, postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"entity_kind": string(kind), "record_id": recordID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)))
}

// ListByUser returns the validation requests of a user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error) {
	return r.list(ctx, postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)))
}

func (r *Repo) list(ctx context.Context, b sq.SelectBuilder) ([]domain.ValidationAudit, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", table, err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	out := make([]domain.ValidationAudit, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Retention
// ---------------------------------------------------------------------------

// DeleteOlderThan removes audit records created before threshold and returns
// how many were deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete(table).
		Where(sq.Lt{"created_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s delete: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}
