package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Table and column names shared by the repos.
const (
	tableGames       = "games"
	tableAttempts    = "game_attempts"
	tableGradeItems  = "grade_items"
	tableGradeGrades = "grade_grades"

	colID       = "id"
	colGameID   = "game_id"
	colUserID   = "user_id"
	colItemID   = "item_id"
	colSequence = "sequence"
)

// schemaStatements creates the tables idempotently. Timestamps are stored as
// unix seconds.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		grade REAL NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 0,
		completion_tracking INTEGER NOT NULL DEFAULT 0,
		completion_view INTEGER NOT NULL DEFAULT 0,
		completion_use_grade INTEGER NOT NULL DEFAULT 0,
		completion_pass INTEGER NOT NULL DEFAULT 0,
		completion_attempts_exhausted INTEGER NOT NULL DEFAULT 0,
		time_created INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_attempts (
		id TEXT PRIMARY KEY,
		game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		sequence INTEGER NOT NULL UNIQUE,
		time_start INTEGER NOT NULL,
		time_finish INTEGER,
		score REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS game_attempts_game_user ON game_attempts (game_id, user_id)`,
	`CREATE TABLE IF NOT EXISTS grade_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER NOT NULL UNIQUE REFERENCES games(id) ON DELETE CASCADE,
		grade_min REAL NOT NULL DEFAULT 0,
		grade_max REAL NOT NULL DEFAULT 100,
		grade_pass REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS grade_grades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES grade_items(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL,
		raw_grade REAL,
		final_grade REAL,
		time_modified INTEGER NOT NULL,
		UNIQUE (item_id, user_id)
	)`,
}

// createTables runs the schema statements through the ent driver.
func createTables(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schemaStatements {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
