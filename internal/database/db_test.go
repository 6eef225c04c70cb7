package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, profile Profile) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "nested", "test.db"),
		Profile: profile,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewCreatesDirectoryAndConnects(t *testing.T) {
	db := openTestDB(t, ProfileCache)

	assert.Equal(t, "test", db.Name())
	assert.True(t, strings.HasSuffix(db.Path(), "test.db"))
	require.NotNil(t, db.Conn())
	require.NoError(t, db.Conn().Ping())
}

func TestNewDefaultsToStandardProfile(t *testing.T) {
	db := openTestDB(t, "")
	assert.Equal(t, ProfileStandard, db.profile)
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t, ProfileCache)
	require.NoError(t, db.HealthCheck(context.Background()))
}

func TestHealthCheckClosedConnection(t *testing.T) {
	db := openTestDB(t, ProfileCache)
	require.NoError(t, db.Close())
	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestWALCheckpoint(t *testing.T) {
	db := openTestDB(t, ProfileCache)

	_, err := db.Conn().Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)
	_, err = db.Conn().Exec(`INSERT INTO t (v) VALUES ('a'), ('b')`)
	require.NoError(t, err)

	// Empty mode falls back to TRUNCATE
	require.NoError(t, db.WALCheckpoint(""))
	require.NoError(t, db.WALCheckpoint("PASSIVE"))
}

func TestBuildConnectionString(t *testing.T) {
	cacheStr := buildConnectionString("/tmp/c.db", ProfileCache)
	assert.Contains(t, cacheStr, "journal_mode(WAL)")
	assert.Contains(t, cacheStr, "synchronous(OFF)")

	stdStr := buildConnectionString("/tmp/s.db", ProfileStandard)
	assert.Contains(t, stdStr, "synchronous(NORMAL)")
	assert.Contains(t, stdStr, "foreign_keys(1)")
}
