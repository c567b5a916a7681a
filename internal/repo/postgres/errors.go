package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailAlreadyUsed = errors.New("email already in use")
	ErrDuplicate        = errors.New("duplicate value")
	ErrInvalidReference = errors.New("referenced row does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}

// mapConstraintErr folds persistence-layer rejections into tagged errors the
// handlers can translate to 422 without inspecting SQLSTATEs themselves.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError

	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == "users_email_key" {
			return ErrEmailAlreadyUsed
		}
		return ErrDuplicate
	case pgForeignKeyViolation:
		return ErrInvalidReference
	}

	return err
}
