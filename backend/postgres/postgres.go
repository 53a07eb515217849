// Package postgres seeds PostgreSQL either through a pgx connection pool
// (asynchronous, pooled) or through a single shared lib/pq connection
// (blocking).
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/seedling/backend/common"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

// Pool is the pooled executor. Each Execute checks a connection out of the
// pool for exactly one statement.
type Pool struct {
	pool  *pgxpool.Pool
	owned bool
}

// Connect opens a pgx pool for url. The returned Pool owns it; Close it when done.
func Connect(ctx context.Context, url string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Pool{pool: pool, owned: true}, nil
}

// New wraps a pool the caller already manages. Close is a no-op for it.
func New(pool *pgxpool.Pool) *Pool {
	return &Pool{pool: pool}
}

func (p *Pool) Execute(ctx context.Context, stmt seeder.Statement) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, stmt.SQL, stmt.Args...)
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() {
	if p.owned && p.pool != nil {
		p.pool.Close()
	}
}

// Conn is the blocking executor's connection: one lib/pq connection shared
// by every holder.
type Conn = common.SharedConn

// Open opens a shared blocking connection using the lib/pq driver.
func Open(url string) (*Conn, error) {
	return common.OpenShared("postgres", url)
}
