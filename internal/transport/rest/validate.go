package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
	"github.com/heartmarshall/serviceregistry-backend/internal/validation"
)

type validationService interface {
	Validate(ctx context.Context, apiVersion int, record domain.Record) (*validation.Report, error)
}

// recordKinds maps the path segment to a constructor of the decoded record.
var recordKinds = map[string]func() domain.Record{
	"organization":       func() domain.Record { return &domain.Organization{} },
	"service":            func() domain.Record { return &domain.Service{} },
	"channel":            func() domain.Record { return &domain.ServiceChannel{} },
	"generaldescription": func() domain.Record { return &domain.GeneralDescription{} },
}

// ValidationHandler serves the record validation endpoints.
type ValidationHandler struct {
	svc          validationService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewValidationHandler creates a ValidationHandler. Request bodies larger
// than maxBodyBytes are rejected.
func NewValidationHandler(svc validationService, maxBodyBytes int64, logger *slog.Logger) *ValidationHandler {
	return &ValidationHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "validation"),
	}
}

// Validate checks the submitted record.
// POST /api/{version}/{kind}/validate, version is "v" followed by a number.
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	version, err := parseAPIVersion(r.PathValue("version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	newRecord, ok := recordKinds[strings.ToLower(r.PathValue("kind"))]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown record kind")
		return
	}

	record := newRecord()
	if err := h.decode(w, r, record); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.svc.Validate(r.Context(), version, record)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := report.Err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validationResponse{Valid: true})
}

func (h *ValidationHandler) decode(w http.ResponseWriter, r *http.Request, dst domain.Record) error {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after the record")
	}
	return nil
}

func parseAPIVersion(s string) (int, error) {
	digits, ok := strings.CutPrefix(strings.ToLower(s), "v")
	if !ok {
		return 0, fmt.Errorf("invalid api version %q", s)
	}
	v, err := strconv.Atoi(digits)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid api version %q", s)
	}
	return v, nil
}
