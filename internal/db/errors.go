package db

import (
	"errors"

	"github.com/lib/pq"
)

const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
	PgCheckViolation      = "23514"
)

func pqCode(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// IsUniqueViolation reports a unique violation, optionally on a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	pqErr, ok := pqCode(err)
	if !ok || pqErr.Code != PgUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func IsForeignKeyViolation(err error) bool {
	pqErr, ok := pqCode(err)
	return ok && pqErr.Code == PgForeignKeyViolation
}

func IsCheckViolation(err error, constraint string) bool {
	pqErr, ok := pqCode(err)
	if !ok || pqErr.Code != PgCheckViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
