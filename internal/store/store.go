package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent SQL driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the tables if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s, err := newStore(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// newStore wires the driver, schema and sequence counter on top of an
// already opened database.
func newStore(ctx context.Context, db *sql.DB) (*Store, error) {
	drv := entsql.OpenDB(dialect.SQLite, db)

	if err := createTables(ctx, drv); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// GameRepo returns a GameRepo backed by this store.
func (s *Store) GameRepo() GameRepo {
	return &gameRepo{drv: s.drv}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{drv: s.drv, seq: s.seq}
}

// GradeRepo returns a GradeRepo backed by this store.
func (s *Store) GradeRepo() GradeRepo {
	return &gradeRepo{drv: s.drv}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the fallback database file path:
// $XDG_DATA_HOME/gamecompletion/gamecompletion.db, falling back to
// ~/.local/share/gamecompletion/gamecompletion.db. The --db flag and
// GAMECOMPLETION_DB take precedence; see resolveDBPath in cmd/root.go.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "gamecompletion", "gamecompletion.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
