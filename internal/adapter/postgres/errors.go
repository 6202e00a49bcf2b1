package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// transientCodes are SQLSTATEs after which a retry may succeed.
var transientCodes = map[string]bool{
	"57014": true, // query_canceled, raised by statement_timeout
	"53300": true, // too_many_connections
	"57P01": true, // admin_shutdown
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
}

// MapError converts pgx/pgconn errors to domain errors.
// key identifies the looked-up row in the message (an id, a code, an OID).
// context.DeadlineExceeded and context.Canceled are NOT mapped, they pass through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	if IsTransient(err) {
		return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrUnavailable, err)
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}

// IsTransient reports whether err is a server-side condition that may clear
// on retry, or a connection exception (SQLSTATE class 08).
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientCodes[pgErr.Code] || pgerrClass(pgErr.Code) == "08"
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func pgerrClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
