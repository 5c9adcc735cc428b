package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translate maps PostgreSQL constraint failures onto the store sentinels.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqForeignKeyViolation:
		return ErrInvalidReference
	case pqUniqueViolation:
		return ErrDuplicateNote
	}
	return err
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
