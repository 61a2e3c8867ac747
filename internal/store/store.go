// Package store persists LLM request events, cached summaries and graded
// quiz attempts in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"

	_ "modernc.org/sqlite"
)

// connPragmas are set on every pooled connection through the DSN.
var connPragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Store holds the SQLite handle and hands out repositories over it.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open opens or creates the database file at path, creating its directory
// when needed, and brings the schema up to date.
func Open(path string) (*Store, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}

	ctx := context.Background()
	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if s.seq, err = newSequenceCounter(ctx, s.drv); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the raw handle for maintenance queries and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

func (s *Store) SummaryRepo() SummaryRepo {
	return &summaryRepo{drv: s.drv}
}

func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{drv: s.drv, seq: s.seq}
}

// dsn appends connPragmas unless the caller already chose pragmas.
func dsn(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	params := strings.Join(lo.Map(connPragmas, func(p string, _ int) string {
		return "_pragma=" + p
	}), "&")
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func ensureParent(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// DefaultDBPath returns TUBEQUIZ_DB when set, otherwise tubequiz.db under
// the XDG data directory (~/.local/share by default).
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TUBEQUIZ_DB"); p != "" {
		return p, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tubequiz", "tubequiz.db"), nil
}
