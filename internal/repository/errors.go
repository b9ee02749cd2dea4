// Package repository hold gorm backed stores, the only code that touches the tables.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the stores translate
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// ErrAccountNotFound is returned when account lookup match no row.
var ErrAccountNotFound = errors.New("account not found")

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
