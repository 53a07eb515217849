// Package common holds pieces shared by the database/sql based backends.
package common

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// SharedConn is a single database connection that several owners may hold.
// Each Exec runs to completion under a lock, so callers never interleave
// on the underlying connection.
type SharedConn struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenShared opens driverName/dsn limited to one physical connection.
func OpenShared(driverName, dsn string) (*SharedConn, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	return &SharedConn{db: db}, nil
}

// NewShared wraps an already open *sql.DB. The caller keeps ownership.
func NewShared(db *sql.DB) *SharedConn {
	return &SharedConn{db: db}
}

func (c *SharedConn) Exec(query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Exec(query, args...)
}

func (c *SharedConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB exposes the underlying handle for schema setup and assertions.
func (c *SharedConn) DB() *sql.DB {
	return c.db
}

func (c *SharedConn) Close() error {
	return c.db.Close()
}

// RowsAffected reads the affected row count, treating drivers that cannot
// report it as zero.
func RowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
