// file: repository/errors.go

package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by the repositories. The service layer matches on
// these instead of inspecting driver errors itself.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrTokenNotFound     = errors.New("refresh token not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateToken    = errors.New("refresh token already exists")
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation on
// the named constraint. The database enforces uniqueness atomically, so two
// concurrent inserts of the same value resolve here, not in application code.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}
