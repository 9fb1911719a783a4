package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SQLSTATE codes raised by Postgres for the constraint classes the
// repositories translate into domain errors.
const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
	sqlstateNotNullViolation    = "23502"
)

// isUniqueConstraintViolation reports whether the write hit a unique index,
// e.g. the (username, active) or (email, active) pair on owners or the item
// key. GORM translates the driver error when its translator is active; the
// SQLSTATE check covers the raw-SQL paths where it is not.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return hasSQLState(err, sqlstateUniqueViolation)
}

// isForeignKeyConstraintViolation reports a write referencing a missing row,
// e.g. a group keeping a member that was never persisted.
func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return hasSQLState(err, sqlstateForeignKeyViolation)
}

// isNotNullConstraintViolation reports a write missing a required column.
func isNotNullConstraintViolation(err error) bool {
	return hasSQLState(err, sqlstateNotNullViolation)
}

func hasSQLState(err error, code string) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "SQLSTATE "+code)
}
