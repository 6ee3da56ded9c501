package repositories

import (
	"errors"
	"strings"

	"advertBack/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isReferencedError reports a delete or update blocked by rows that still
// point at the target.
func isReferencedError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlRowIsReferenced
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && isDeleteSide(pgErr)
}

// isMissingReferenceError reports an insert or update pointing at a row that
// does not exist.
func isMissingReferenceError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlNoReferencedRow
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && !isDeleteSide(pgErr)
}

// Postgres uses one code for both directions; the detail text tells them apart.
func isDeleteSide(pgErr *pgconn.PgError) bool {
	return strings.Contains(strings.ToLower(pgErr.Detail), "is still referenced")
}

// mapWriteError translates constraint failures into model errors.
func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isReferencedError(err):
		return models.ErrReferenced
	case isMissingReferenceError(err):
		return models.ErrInvalidReference
	default:
		return err
	}
}
