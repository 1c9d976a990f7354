package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error classes we translate into the API taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a store-level uniqueness
// conflict (duplicate slug, email...).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a referential violation,
// e.g. deleting a client that still has appointments.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
