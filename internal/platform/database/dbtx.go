package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// DBTX is satisfied by *sql.Tx. Repository methods that must take part in a
// caller's transaction accept it instead of using their own pool.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

// BeginTx starts a transaction on db and returns it as a DBTX.
func BeginTx(ctx context.Context, db *sql.DB) (DBTX, error) {
	return db.BeginTx(ctx, nil)
}

const (
	codeOutOfRange      = "22003"
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// sqlState extracts the SQLSTATE from either driver's error type.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

func IsCheckViolation(err error) bool {
	return sqlState(err) == codeCheckViolation
}

// IsOutOfRange reports a numeric value that does not fit its column.
func IsOutOfRange(err error) bool {
	return sqlState(err) == codeOutOfRange
}
