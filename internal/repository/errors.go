package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUndefinedTable is the Postgres error code for a missing relation.
const pgUndefinedTable = "42P01"

// IsSchemaMissing reports whether err indicates the database schema has not
// been set up (missing table). Callers degrade to an empty-but-usable state
// instead of failing hard.
func IsSchemaMissing(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	// sqlite (tests) reports missing tables as a plain error string
	return strings.Contains(err.Error(), "no such table")
}
