package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

// History returns the latest validation outcomes of a record. Admin only.
func (s *Service) History(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	var errs []domain.FieldError
	if !kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "unknown entity kind"})
	}
	if recordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, pageErrors(limit, 0)...)
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	records, err := s.audit.ListByRecord(ctx, kind, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("list validation history: %w", err)
	}
	return records, nil
}

// UserHistory pages through the validations a user ran, newest first.
// Admin only.
func (s *Service) UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	var errs []domain.FieldError
	if userID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, pageErrors(limit, offset)...)
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	records, err := s.audit.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user validation history: %w", err)
	}
	return records, nil
}

func requireAdmin(ctx context.Context) error {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

func pageErrors(limit, offset int) []domain.FieldError {
	var errs []domain.FieldError
	if limit < 1 || limit > MaxHistoryLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxHistoryLimit)})
	}
	if offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	return errs
}
