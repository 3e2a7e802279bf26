package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes of the integrity violations the repositories translate.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// ConstraintViolation reports whether err is a Postgres error with the given
// SQLSTATE code and returns the name of the violated constraint.
func ConstraintViolation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err violates the named unique
// constraint. An empty name matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	name, ok := ConstraintViolation(err, UniqueViolation)
	return ok && (constraint == "" || name == constraint)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	_, ok := ConstraintViolation(err, ForeignKeyViolation)
	return ok
}
