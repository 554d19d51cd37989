package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"reconciliations", "reconciliation_changes", "goose_db_version"} {
		t.Run(table, func(t *testing.T) {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			require.NoError(t, err, "Querying for %s table should not produce an error", table)
			assert.Equal(t, table, name)
		})
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := t.TempDir() + "/journal.db"

	db, teardown, err := InitDB(path, "", "")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO reconciliations (pass_id, direction, status, started_at) VALUES ('p1', 'apply', 'ok', 1)")
	require.NoError(t, err)
	teardown()

	db, teardown, err = InitDB(path, "", "")
	require.NoError(t, err)
	defer teardown()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reconciliations").Scan(&count))
	assert.Equal(t, 1, count)
}
