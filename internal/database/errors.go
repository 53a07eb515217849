package database

import (
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Describe adds driver detail to a seed failure for display. The error
// itself is never altered; callers that need the driver error use errors.As
// on the original.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return fmt.Sprintf("%s: %s (%s)", pgErr.Message, pgErr.Detail, pgErr.SQLState())
		}
		return fmt.Sprintf("%s (%s)", pgErr.Message, pgErr.SQLState())
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Detail != "" {
			return fmt.Sprintf("%s: %s (%s)", pqErr.Message, pqErr.Detail, pqErr.Code)
		}
		return fmt.Sprintf("%s (%s)", pqErr.Message, pqErr.Code)
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return fmt.Sprintf("%s (mysql %d)", myErr.Message, myErr.Number)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return fmt.Sprintf("%s (sqlite %s)", liteErr.Error(), liteErr.ExtendedCode.Error())
	}

	return err.Error()
}
