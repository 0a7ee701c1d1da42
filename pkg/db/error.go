package db

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	// GORM wraps driver errors, unwrap first
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (error code 1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

// ConflictError reports which field caused a uniqueness violation, so the
// HTTP layer can answer 409 with a human-readable message.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(field, message string) *ConflictError {
	return &ConflictError{Field: field, Message: message}
}

var (
	pgConstraintPattern     = regexp.MustCompile(`unique constraint "([^"]+)"`)
	mysqlKeyPattern         = regexp.MustCompile(`for key '([^']+)'`)
	sqliteConstraintPattern = regexp.MustCompile(`UNIQUE constraint failed: ([\w.]+)`)
)

// DuplicateKeyConstraint returns the name of the violated unique constraint
// (or the qualified column for drivers that report one), empty when the error
// is not a uniqueness violation or the driver gave no detail.
func DuplicateKeyConstraint(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}

	msg := err.Error()
	if m := pgConstraintPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := sqliteConstraintPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := mysqlKeyPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}

	return ""
}
