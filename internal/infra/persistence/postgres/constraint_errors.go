package postgres

import (
	"context"
	"database/sql/driver"
	"net"
	"strings"

	"lens/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a unique-index rejection.
// The unique index is the final authority on duplicate keys, so this check
// has to catch the violation however the driver reports it: GORM's translated
// sentinel, the PostgreSQL error text/code, or SQLite's wording (used by the
// in-memory test database).
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "sqlstate 23505") ||
		strings.Contains(errMsg, "unique constraint failed")
}

// isConnectivityError reports whether err means the store could not be
// reached, as opposed to a statement the store rejected.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, net.ErrClosed) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "the database system is shutting down") ||
		strings.Contains(errMsg, "sqlstate 57p")
}

// storeError translates a failed statement's error for callers: connectivity
// failures become repository.ErrStoreUnavailable, anything else is wrapped
// with the operation message.
func storeError(err error, message string) error {
	if isConnectivityError(err) {
		return repository.ErrStoreUnavailable
	}

	return errors.Wrap(err, message)
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502")
}
