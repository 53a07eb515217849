package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Lumos-Labs-HQ/seedling/fake"
	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func TestDSN(t *testing.T) {
	tests := map[string]string{
		"sqlite://./data.sqlite":    "./data.sqlite?_journal_mode=WAL&_foreign_keys=on",
		"data.db":                   "data.db?_journal_mode=WAL&_foreign_keys=on",
		":memory:":                  ":memory:",
		"sqlite://app.db?mode=ro":   "app.db?mode=ro",
		"file:test.db?cache=shared": "file:test.db?cache=shared",
	}
	for in, want := range tests {
		if got := DSN(in); got != want {
			t.Errorf("DSN(%q): expected %q, got %q", in, want, got)
		}
	}
}

func openUsers(t *testing.T) *Conn {
	t.Helper()
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec("CREATE TABLE users (id TEXT PRIMARY KEY NOT NULL, username TEXT NOT NULL, email TEXT NOT NULL)")
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return conn
}

func countUsers(t *testing.T, conn *Conn) int {
	t.Helper()
	var n int
	if err := conn.DB().QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	return n
}

func usersMock(n int) *seeder.Mock {
	return seeder.MustDefine(seeder.NoSchema, "users", n,
		seeder.Col("id", fake.UUID),
		seeder.Col("username", fake.Username),
		seeder.Col("email", fake.Email),
	)
}

func TestBlockingSeed(t *testing.T) {
	conn := openUsers(t)

	n, err := seeder.Seed(context.Background(), seeder.Blocking(conn), usersMock(5))
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Expected 5 rows affected, got %d", n)
	}
	if got := countUsers(t, conn); got != 5 {
		t.Errorf("Expected 5 rows in table, got %d", got)
	}
}

func TestQuotedValuesAreStored(t *testing.T) {
	conn := openUsers(t)

	m := seeder.MustDefine(seeder.NoSchema, "users", 1,
		seeder.Col("id", seeder.Const("1")),
		seeder.Col("username", seeder.Const("O'Brien")),
		seeder.Col("email", seeder.Const("x'); DROP TABLE users; --")),
	)
	if _, err := seeder.Seed(context.Background(), seeder.Blocking(conn), m); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var username, email string
	if err := conn.DB().QueryRow("SELECT username, email FROM users WHERE id = '1'").Scan(&username, &email); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if username != "O'Brien" || email != "x'); DROP TABLE users; --" {
		t.Errorf("Values were not stored verbatim: %q %q", username, email)
	}
}

func TestRunStopsOnConstraintViolation(t *testing.T) {
	conn := openUsers(t)

	dup := seeder.MustDefine(seeder.NoSchema, "users", 2,
		seeder.Col("id", seeder.Const("same")),
		seeder.Col("username", fake.Username),
		seeder.Col("email", fake.Email),
	)

	err := seeder.Run(context.Background(), seeder.Blocking(conn), usersMock(2), dup, usersMock(3))
	if err == nil {
		t.Fatal("Expected a constraint violation")
	}
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		t.Errorf("Expected a sqlite3 constraint error unchanged, got %T: %v", err, err)
	}
	if got := countUsers(t, conn); got != 2 {
		t.Errorf("Expected only the first mock's 2 rows, got %d", got)
	}
}

func TestBoundMode(t *testing.T) {
	conn := openUsers(t)

	table, err := seeder.NewTable(seeder.NoSchema, "users",
		seeder.Col("id", fake.UUID),
		seeder.Col("username", seeder.Const("it's bound")),
		seeder.Col("email", fake.Email),
	)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	m := seeder.MustMock(table, 3, seeder.WithPlaceholders(squirrel.Question))
	if !m.Bound() {
		t.Fatal("Expected the mock to be in bound mode")
	}

	if _, err := seeder.Seed(context.Background(), seeder.Blocking(conn), m); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if got := countUsers(t, conn); got != 3 {
		t.Errorf("Expected 3 rows, got %d", got)
	}

	var n int
	if err := conn.DB().QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", "it's bound").Scan(&n); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected bound values to be stored verbatim, matched %d rows", n)
	}
}

func TestSharedConnConcurrentSeeds(t *testing.T) {
	conn := openUsers(t)
	ex := seeder.Blocking(conn)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := seeder.Seed(context.Background(), ex, usersMock(10)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent seed failed: %v", err)
	}
	if got := countUsers(t, conn); got != 80 {
		t.Errorf("Expected 80 rows, got %d", got)
	}
}
