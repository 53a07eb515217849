// Package sqlite seeds SQLite through one shared blocking connection using
// mattn/go-sqlite3.
//
// A sqlite3 connection must not be used from several goroutines at once.
// Conn serializes access so each seed runs as one complete statement.
package sqlite

import (
	"strings"

	"github.com/Lumos-Labs-HQ/seedling/backend/common"
	_ "github.com/mattn/go-sqlite3"
)

type Conn = common.SharedConn

// Open opens path (optionally prefixed with sqlite://) as a shared
// connection. File databases default to WAL journaling.
func Open(url string) (*Conn, error) {
	return common.OpenShared("sqlite3", DSN(url))
}

// DSN normalizes a sqlite:// URL or bare path into a go-sqlite3 DSN.
func DSN(url string) string {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if dbPath == ":memory:" || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_journal_mode=WAL&_foreign_keys=on"
}
