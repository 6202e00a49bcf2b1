package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type validationResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []fieldErrorResponse `json:"errors,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, vErr *domain.ValidationError) {
	resp := validationResponse{Errors: make([]fieldErrorResponse, len(vErr.Errors))}
	for i, fe := range vErr.Errors {
		resp.Errors[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message, Kind: fe.Kind}
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

// handleError maps domain errors to HTTP responses. Unknown errors are
// logged and hidden behind a 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(w, vErr)
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnavailable):
		log.WarnContext(r.Context(), "storage unavailable", slog.String("error", err.Error()))
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
