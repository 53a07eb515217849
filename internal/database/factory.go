package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/seedling/backend/common"
	"github.com/Lumos-Labs-HQ/seedling/backend/mysql"
	"github.com/Lumos-Labs-HQ/seedling/backend/postgres"
	"github.com/Lumos-Labs-HQ/seedling/backend/sqlite"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/jackc/pgx/v5/pgconn"
)

// OnSeed reports one finished mock with the rows it inserted.
type OnSeed func(i int, m *seeder.Mock, rows int64)

// Target is an open database that mocks can be seeded into. Results from
// every backend are reduced to a rows-affected count.
type Target interface {
	Run(ctx context.Context, mocks []*seeder.Mock, onSeed OnSeed) error
	Ping(ctx context.Context) error
	Close() error
}

type target[R any] struct {
	exec  seeder.Executor[R]
	rows  func(R) int64
	ping  func(ctx context.Context) error
	close func() error
}

func (t *target[R]) Run(ctx context.Context, mocks []*seeder.Mock, onSeed OnSeed) error {
	r := &seeder.Runner[R]{Exec: t.exec}
	if onSeed != nil {
		r.OnSeed = func(i int, m *seeder.Mock, res R) {
			onSeed(i, m, t.rows(res))
		}
	}
	return r.Run(ctx, mocks)
}

func (t *target[R]) Ping(ctx context.Context) error {
	return t.ping(ctx)
}

func (t *target[R]) Close() error {
	return t.close()
}

// Open connects to url for provider. Mode "conn" selects the single shared
// blocking connection, anything else the pooled executor. SQLite is always
// a shared connection.
func Open(ctx context.Context, provider, mode, url string) (Target, error) {
	switch provider {
	case "postgresql", "postgres":
		if mode == "conn" {
			conn, err := postgres.Open(url)
			if err != nil {
				return nil, err
			}
			return blockingTarget(conn), nil
		}
		pool, err := postgres.Connect(ctx, url)
		if err != nil {
			return nil, err
		}
		return &target[pgconn.CommandTag]{
			exec:  pool,
			rows:  func(tag pgconn.CommandTag) int64 { return tag.RowsAffected() },
			ping:  pool.Ping,
			close: func() error { pool.Close(); return nil },
		}, nil

	case "mysql":
		if mode == "conn" {
			conn, err := mysql.OpenConn(url)
			if err != nil {
				return nil, err
			}
			return blockingTarget(conn), nil
		}
		pool, err := mysql.Open(url)
		if err != nil {
			return nil, err
		}
		return &target[sql.Result]{
			exec:  pool,
			rows:  common.RowsAffected,
			ping:  pool.Ping,
			close: pool.Close,
		}, nil

	case "sqlite", "sqlite3":
		conn, err := sqlite.Open(url)
		if err != nil {
			return nil, err
		}
		return blockingTarget(conn), nil

	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

func blockingTarget(conn *common.SharedConn) Target {
	return &target[int64]{
		exec:  seeder.Blocking(conn),
		rows:  func(n int64) int64 { return n },
		ping:  conn.Ping,
		close: conn.Close,
	}
}
