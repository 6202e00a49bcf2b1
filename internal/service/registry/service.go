// Package registry is the application service in front of the validation
// engine. It resolves the caller and the previous version of a record, runs
// the engine inside a read-only snapshot of the registry and records the
// outcome.
package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
)

type snapshotRepo interface {
	Latest(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (*domain.Snapshot, error)
}

type auditRepo interface {
	Log(ctx context.Context, rec domain.ValidationAudit) error
	ListByRecord(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error)
}

type txManager interface {
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Lookups groups the engine's ports.
type Lookups struct {
	Codes    validation.CodeLookup
	Taxonomy validation.TaxonomyLookup
	Registry validation.RegistryLookup
}

// MaxHistoryLimit caps the number of audit entries returned by History.
const MaxHistoryLimit = 100

// Service validates submitted registry records.
type Service struct {
	lookups   Lookups
	snapshots snapshotRepo
	audit     auditRepo
	tx        txManager
	metrics   *metrics.Metrics
	cfg       config.ValidationConfig
	log       *slog.Logger
}

// NewService creates a new registry Service. m may be nil.
func NewService(
	log *slog.Logger,
	cfg config.ValidationConfig,
	lookups Lookups,
	snapshots snapshotRepo,
	audit auditRepo,
	tx txManager,
	m *metrics.Metrics,
) *Service {
	return &Service{
		lookups:   lookups,
		snapshots: snapshots,
		audit:     audit,
		tx:        tx,
		metrics:   m,
		cfg:       cfg,
		log:       log.With("service", "registry"),
	}
}

// Rules returns the engine thresholds derived from configuration.
func (s *Service) Rules() validation.Rules {
	return validation.Rules{
		MaxServiceClasses:           s.cfg.MaxServiceClasses,
		MaxOntologyTerms:            s.cfg.MaxOntologyTerms,
		LimitsFromVersion:           s.cfg.LimitsFromVersion,
		SupportLanguagesFromVersion: s.cfg.SupportLanguagesFromVersion,
		CitizensTargetGroupPrefix:   s.cfg.CitizensTargetGroupPrefix,
		BusinessesTargetGroupPrefix: s.cfg.BusinessesTargetGroupPrefix,
	}
}

// VersionRange returns the accepted API versions, inclusive.
func (s *Service) VersionRange() (minVersion, maxVersion int) {
	return s.cfg.MinAPIVersion, s.cfg.MaxAPIVersion
}
