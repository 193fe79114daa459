package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-event-registration/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto the repository sentinels and passes everything else through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(repository.ErrDuplicate, err)
		case pgForeignKeyViolation:
			return errors.Join(repository.ErrReferenceMissing, err)
		}
	}
	return err
}

// validID reports whether id can be bound to a UUID column. Malformed ids are
// treated as missing rows instead of letting Postgres raise 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
