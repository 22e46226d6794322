package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func stringPtr(val string) *string {
	if val == "" {
		return nil
	}
	return &val
}
