package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a write hits a unique constraint
// (duplicate slug, duplicate name, second review on the same title).
var ErrDuplicate = errors.New("record already exists")

const uniqueViolationCode = "23505"

// translateError maps driver-level errors onto repository sentinels so
// services never have to inspect pgconn themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
