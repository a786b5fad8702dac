package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_runs (id INTEGER PRIMARY KEY, source TEXT NOT NULL, ratio REAL)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_runs")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, ColumnInfo{Field: "id", Type: "integer", Null: "YES", Key: "PRI"}, columns[0])
	assert.Equal(t, "NO", columns[1].Null)
	assert.Equal(t, "real", columns[2].Type)

	// PRAGMA table_info yields no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE runs (id TEXT, Source TEXT)").Error)

	missing, err := MissingColumns(db, "runs", []string{"id", "source", "ratio", "groups"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ratio", "groups"}, missing)
}
