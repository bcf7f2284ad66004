package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store persists accounts and contacts. The default backend is a single
// SQLite file; a postgres:// DSN selects PostgreSQL instead.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database described by dsn and runs migrations.
//
//   - ""                     in-memory SQLite (tests)
//   - "/path/to/contacts.db" SQLite file, parent directory created if needed
//   - "postgres://..."       PostgreSQL via pgx
func Open(dsn string) (*Store, error) {
	driver := "sqlite"
	switch {
	case dsn == "":
		dsn = ":memory:?_journal_mode=WAL"
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		driver = "pgx"
	default:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// SQLite reports "UNIQUE constraint failed", PostgreSQL "duplicate key
// value violates unique constraint".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
