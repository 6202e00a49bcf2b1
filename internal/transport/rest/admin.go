package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
	"github.com/heartmarshall/serviceregistry-backend/pkg/ctxutil"
)

type adminService interface {
	Rules() validation.Rules
	VersionRange() (minVersion, maxVersion int)
	History(ctx context.Context, kind domain.EntityKind, recordID uuid.UUID, limit int) ([]domain.ValidationAudit, error)
	UserHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ValidationAudit, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc: svc,
		log: logger.With("handler", "admin"),
	}
}

type rulesResponse struct {
	MinAPIVersion               int    `json:"minApiVersion"`
	MaxAPIVersion               int    `json:"maxApiVersion"`
	MaxServiceClasses           int    `json:"maxServiceClasses"`
	MaxOntologyTerms            int    `json:"maxOntologyTerms"`
	LimitsFromVersion           int    `json:"limitsFromVersion"`
	SupportLanguagesFromVersion int    `json:"supportLanguagesFromVersion"`
	CitizensTargetGroupPrefix   string `json:"citizensTargetGroupPrefix"`
	BusinessesTargetGroupPrefix string `json:"businessesTargetGroupPrefix"`
}

type auditResponse struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	EntityKind     string         `json:"entityKind"`
	RecordID       *string        `json:"recordId,omitempty"`
	APIVersion     int            `json:"apiVersion"`
	Valid          bool           `json:"valid"`
	ViolationCount int            `json:"violationCount"`
	Kinds          map[string]int `json:"kinds,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Rules returns the active validation thresholds.
// GET /admin/validation/rules
func (h *AdminHandler) Rules(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	rules := h.svc.Rules()
	lo, hi := h.svc.VersionRange()
	writeJSON(w, http.StatusOK, rulesResponse{
		MinAPIVersion:               lo,
		MaxAPIVersion:               hi,
		MaxServiceClasses:           rules.MaxServiceClasses,
		MaxOntologyTerms:            rules.MaxOntologyTerms,
		LimitsFromVersion:           rules.LimitsFromVersion,
		SupportLanguagesFromVersion: rules.SupportLanguagesFromVersion,
		CitizensTargetGroupPrefix:   rules.CitizensTargetGroupPrefix,
		BusinessesTargetGroupPrefix: rules.BusinessesTargetGroupPrefix,
	})
}

// History returns the validation history of a record.
// GET /admin/validation/history/{kind}/{id}?limit=20
func (h *AdminHandler) History(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}
	limit, _, ok := pageParams(w, r)
	if !ok {
		return
	}

	records, err := h.svc.History(r.Context(), domain.EntityKind(r.PathValue("kind")), id, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditResponses(records))
}

// UserHistory lists the validations a user ran, newest first.
// GET /admin/validation/users/{id}/history?limit=20&offset=0
func (h *AdminHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, offset, ok := pageParams(w, r)
	if !ok {
		return
	}

	records, err := h.svc.UserHistory(r.Context(), id, limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditResponses(records))
}

// pageParams reads limit (default 20) and offset (default 0). Range checks
// are left to the service; only non-integers are rejected here.
func pageParams(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = 20
	q := r.URL.Query()
	params := []struct {
		name string
		dst  *int
	}{{"limit", &limit}, {"offset", &offset}}
	for _, p := range params {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+p.name)
			return 0, 0, false
		}
		*p.dst = n
	}
	return limit, offset, true
}

func toAuditResponses(records []domain.ValidationAudit) []auditResponse {
	resp := make([]auditResponse, len(records))
	for i, rec := range records {
		resp[i] = auditResponse{
			ID:             rec.ID.String(),
			UserID:         rec.UserID.String(),
			EntityKind:     rec.EntityKind.String(),
			APIVersion:     rec.APIVersion,
			Valid:          rec.Valid,
			ViolationCount: rec.ViolationCount,
			Kinds:          rec.Kinds,
			CreatedAt:      rec.CreatedAt.UTC(),
		}
		if rec.RecordID != nil {
			s := rec.RecordID.String()
			resp[i].RecordID = &s
		}
	}
	return resp
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := ctxutil.PrincipalFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
