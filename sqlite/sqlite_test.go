package sqlite_test

import (
	"testing"

	"github.com/ollapdf/ollapdf/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

func TestDB_OpenClose(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())
}

func TestDB_FileDatabase(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/ollapdf.db"
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())

	// Reopening should not fail on the existing schema.
	db = sqlite.NewDB(path)
	require.NoError(t, db.Open())
	require.NoError(t, db.Close())
}
