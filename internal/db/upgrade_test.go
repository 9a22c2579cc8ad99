package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeAddsNameKeys opens a database whose exercise library
// predates the name_key column and checks existing rows are backfilled.
func TestMigrate_UpgradeAddsNameKeys(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE exercise_definitions (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'strength',
		doc        TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO exercise_definitions (id, name, doc, created_at) VALUES
		('e1', 'Bench  Press', '{}', '2025-06-01T00:00:00Z'),
		('e2', 'ROW', '{}', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	keys := map[string]string{}
	rows, err := db.Query(`SELECT id, name_key FROM exercise_definitions ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var id, key string
		require.NoError(t, rows.Scan(&id, &key))
		keys[id] = key
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]string{"e1": "bench press", "e2": "row"}, keys)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_exercise_definitions_name_key'`).Scan(&name)
	require.NoError(t, err)

	require.NoError(t, Migrate(db), "rerun after upgrade")
}
