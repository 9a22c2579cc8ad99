package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent and
// rerun on each open; ALTER TABLE additions that already exist are skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillNameKeys(db); err != nil {
		return fmt.Errorf("backfilling exercise name keys: %w", err)
	}
	for i, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS blocks (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		source          TEXT NOT NULL DEFAULT 'user'
		                CHECK(source IN ('user','ai')),
		number_of_weeks INTEGER NOT NULL DEFAULT 1,
		doc             TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id              TEXT PRIMARY KEY,
		block_id        TEXT NOT NULL REFERENCES blocks(id) ON DELETE CASCADE,
		week_index      INTEGER NOT NULL CHECK(week_index >= 1),
		day_template_id TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'notStarted'
		                CHECK(status IN ('notStarted','inProgress','completed')),
		doc             TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_definitions (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		name_key   TEXT NOT NULL DEFAULT '',
		type       TEXT NOT NULL DEFAULT 'strength',
		doc        TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	// Databases created before lookups by normalized name.
	`ALTER TABLE exercise_definitions ADD COLUMN name_key TEXT NOT NULL DEFAULT ''`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_blocks_updated ON blocks(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_block ON workout_sessions(block_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_block_week_day ON workout_sessions(block_id, week_index, day_template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exercise_definitions_name_key ON exercise_definitions(name_key)`,
}

// NameKey normalizes an exercise name for lookup.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func migrateBackfillNameKeys(db *sql.DB) error {
	ctx := context.Background()
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM exercise_definitions WHERE name_key = ''`)
	if err != nil {
		return fmt.Errorf("querying definitions without name key: %w", err)
	}
	type pending struct{ id, name string }
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning definition: %w", err)
		}
		todo = append(todo, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, p := range todo {
		if _, err := db.ExecContext(ctx, `UPDATE exercise_definitions SET name_key = ? WHERE id = ?`, NameKey(p.name), p.id); err != nil {
			return fmt.Errorf("updating definition %s: %w", p.id, err)
		}
	}
	return nil
}
