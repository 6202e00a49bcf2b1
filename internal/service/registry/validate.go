package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

// Validate checks record for the authenticated caller at apiVersion.
// A completed pass returns the report and a nil error even when the record
// is invalid; use Report.Err to turn violations into a domain error.
func (s *Service) Validate(ctx context.Context, apiVersion int, record domain.Record) (*validation.Report, error) {
	caller, err := callerFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !s.cfg.SupportsVersion(apiVersion) {
		return nil, fmt.Errorf("%w: api version %d is not supported (%d..%d)",
			domain.ErrBadRequest, apiVersion, s.cfg.MinAPIVersion, s.cfg.MaxAPIVersion)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: record is required", domain.ErrBadRequest)
	}

	kind := record.EntityKind()
	recordID := domain.RecordID(record)
	env := validation.Env{
		Codes:      s.lookups.Codes,
		Taxonomy:   s.lookups.Taxonomy,
		Registry:   s.lookups.Registry,
		APIVersion: apiVersion,
		Caller:     caller,
		Rules:      s.Rules(),
	}

	start := time.Now()
	var report *validation.Report
	err = s.tx.RunReadOnly(ctx, func(txCtx context.Context) error {
		var previous *domain.Snapshot
		if recordID != uuid.Nil {
			var loadErr error
			previous, loadErr = s.snapshots.Latest(txCtx, kind, recordID)
			if loadErr != nil {
				return fmt.Errorf("load previous %s version: %w", kind, loadErr)
			}
		}

		var runErr error
		report, runErr = validation.Validate(txCtx, env, record, previous)
		return runErr
	})
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveValidation(kind.String(), metrics.OutcomeError, elapsed)
		if errors.Is(err, validation.ErrContractViolation) {
			s.log.ErrorContext(ctx, "validation contract violation",
				slog.String("entity", kind.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	outcome := metrics.OutcomeValid
	if !report.Valid() {
		outcome = metrics.OutcomeInvalid
	}
	s.metrics.ObserveValidation(kind.String(), outcome, elapsed)
	kinds := countKinds(report)
	for k, n := range kinds {
		s.metrics.AddViolations(kind.String(), k, n)
	}

	s.recordAudit(ctx, caller, kind, recordID, apiVersion, report, kinds)

	s.log.InfoContext(ctx, "record validated",
		slog.String("user_id", caller.UserID.String()),
		slog.String("entity", kind.String()),
		slog.Int("api_version", apiVersion),
		slog.Bool("valid", report.Valid()),
		slog.Int("violations", report.Len()),
		slog.Duration("duration", elapsed),
	)

	return report, nil
}

// recordAudit stores the outcome. Audit failures are logged, never returned.
func (s *Service) recordAudit(
	ctx context.Context,
	caller domain.Caller,
	kind domain.EntityKind,
	recordID uuid.UUID,
	apiVersion int,
	report *validation.Report,
	kinds map[string]int,
) {
	if s.audit == nil {
		return
	}
	rec := domain.ValidationAudit{
		ID:             uuid.New(),
		UserID:         caller.UserID,
		EntityKind:     kind,
		APIVersion:     apiVersion,
		Valid:          report.Valid(),
		ViolationCount: report.Len(),
		Kinds:          kinds,
		CreatedAt:      time.Now().UTC(),
	}
	if recordID != uuid.Nil {
		rec.RecordID = &recordID
	}
	if err := s.audit.Log(context.WithoutCancel(ctx), rec); err != nil {
		s.log.WarnContext(ctx, "audit log failed",
			slog.String("entity", kind.String()),
			slog.String("error", err.Error()),
		)
	}
}

func countKinds(report *validation.Report) map[string]int {
	kinds := make(map[string]int)
	for _, v := range report.Violations() {
		kinds[v.Kind.String()]++
	}
	return kinds
}

// callerFromCtx builds the engine's caller from the authenticated request.
func callerFromCtx(ctx context.Context) (domain.Caller, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return domain.Caller{}, domain.ErrUnauthorized
	}
	role := domain.UserRole(p.Role)
	if !role.IsValid() {
		role = domain.UserRoleUser
	}
	return domain.Caller{
		UserID:        p.UserID,
		Role:          role,
		Organizations: p.Organizations,
	}, nil
}
