package db

import (
	"strings"

	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// A non-empty constraintName narrows the match to that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	return matchViolation(err, pgUniqueViolation, constraintName, "duplicate key value", "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error, constraintName string) bool {
	return matchViolation(err, pgForeignKeyViolation, constraintName, "violates foreign key constraint", "FOREIGN KEY constraint failed")
}

func matchViolation(err error, pgCode, constraintName string, fallbacks ...string) bool {
	if err == nil {
		return false
	}
	if diag, ok := pkgerrors.Postgres(err); ok {
		if diag.Code != pgCode {
			return false
		}
		return constraintName == "" || diag.Constraint == constraintName
	}

	msg := err.Error()
	if constraintName != "" && !strings.Contains(msg, constraintName) {
		return false
	}
	for _, f := range fallbacks {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
