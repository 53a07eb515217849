package seeder

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordingExecutor records every statement and fails on the configured call.
type recordingExecutor struct {
	mu     sync.Mutex
	calls  []string
	failOn int
	err    error
}

func (r *recordingExecutor) Execute(_ context.Context, stmt Statement) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, stmt.SQL)
	if len(r.calls) == r.failOn {
		return 0, r.err
	}
	return int64(strings.Count(stmt.SQL, ",\n") + 1), nil
}

func mockFor(t *testing.T, table string, n int) *Mock {
	t.Helper()
	m, err := Define(NoSchema, table, n, Col("id", Const(1)))
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	return m
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("unique constraint violated")
	ex := &recordingExecutor{failOn: 2, err: boom}

	err := Run[int64](context.Background(), ex,
		mockFor(t, "first", 1),
		mockFor(t, "second", 1),
		mockFor(t, "third", 1),
	)

	if err != boom {
		t.Fatalf("Expected the backend error unchanged, got %v", err)
	}
	if len(ex.calls) != 2 {
		t.Fatalf("Expected 2 executions, got %d", len(ex.calls))
	}
	if !strings.Contains(ex.calls[0], "INTO first ") || !strings.Contains(ex.calls[1], "INTO second ") {
		t.Errorf("Unexpected execution order: %v", ex.calls)
	}
}

func TestRunSucceeds(t *testing.T) {
	ex := &recordingExecutor{}
	var seeded []string
	var rows int64

	r := &Runner[int64]{
		Exec: ex,
		OnSeed: func(i int, m *Mock, res int64) {
			seeded = append(seeded, m.Table().Name())
			rows += res
		},
	}

	mocks := []*Mock{mockFor(t, "a", 2), mockFor(t, "b", 3)}
	if err := r.Run(context.Background(), mocks); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if strings.Join(seeded, ",") != "a,b" {
		t.Errorf("Unexpected seed order: %v", seeded)
	}
	if rows != 5 {
		t.Errorf("Expected 5 rows, got %d", rows)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := &recordingExecutor{}
	err := Run[int64](ctx, ex, mockFor(t, "a", 1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(ex.calls) != 0 {
		t.Errorf("Expected no executions, got %d", len(ex.calls))
	}
}

func TestSeedAsync(t *testing.T) {
	ex := &recordingExecutor{}
	f := SeedAsync[int64](context.Background(), ex, mockFor(t, "users", 4))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 rows, got %d", n)
	}
	select {
	case <-f.Done():
	default:
		t.Error("Done should be closed after Wait returns a result")
	}
}

func TestFutureWaitRespectsContext(t *testing.T) {
	release := make(chan struct{})
	ex := ExecutorFunc[int64](func(ctx context.Context, stmt Statement) (int64, error) {
		<-release
		return 1, nil
	})
	defer close(release)

	f := SeedAsync[int64](context.Background(), ex, mockFor(t, "slow", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

type fakeConn struct {
	query string
	args  []any
	err   error
}

func (c *fakeConn) Exec(query string, args ...any) (sql.Result, error) {
	c.query = query
	c.args = args
	if c.err != nil {
		return nil, c.err
	}
	return fakeResult(3), nil
}

func TestBlockingExecutor(t *testing.T) {
	conn := &fakeConn{}
	n, err := Seed(context.Background(), Blocking(conn), mockFor(t, "users", 3))
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 rows affected, got %d", n)
	}
	if !strings.HasPrefix(conn.query, "INSERT INTO users (id) VALUES ") {
		t.Errorf("Unexpected query: %q", conn.query)
	}

	boom := errors.New("database is locked")
	conn.err = boom
	if _, err := Seed(context.Background(), Blocking(conn), mockFor(t, "users", 1)); err != boom {
		t.Errorf("Expected backend error unchanged, got %v", err)
	}
}
