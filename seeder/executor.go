package seeder

import (
	"context"
	"database/sql"
)

// Statement is a rendered INSERT ready to hand to a backend. Args is empty
// for literal statements.
type Statement struct {
	SQL  string
	Args []any
}

// Executor runs one statement against a backend and returns the backend's
// native result. Implementations must not retry or inspect the SQL.
type Executor[R any] interface {
	Execute(ctx context.Context, stmt Statement) (R, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc[R any] func(ctx context.Context, stmt Statement) (R, error)

func (f ExecutorFunc[R]) Execute(ctx context.Context, stmt Statement) (R, error) {
	return f(ctx, stmt)
}

// Seed renders m and executes it once. Backend errors are returned unchanged.
func Seed[R any](ctx context.Context, ex Executor[R], m *Mock) (R, error) {
	stmt, err := m.Statement()
	if err != nil {
		var zero R
		return zero, err
	}
	return ex.Execute(ctx, stmt)
}

// SyncConn is a connection that executes statements synchronously.
// *sql.DB, *sql.Tx and the shared handles in the backend packages satisfy it.
type SyncConn interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type blocking struct {
	conn SyncConn
}

// Blocking returns an executor that runs each statement on conn with a
// plain blocking call and reports the affected row count. The context is
// not consulted: the call occupies the caller until the database answers.
func Blocking(conn SyncConn) Executor[int64] {
	return &blocking{conn: conn}
}

func (b *blocking) Execute(_ context.Context, stmt Statement) (int64, error) {
	res, err := b.conn.Exec(stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
