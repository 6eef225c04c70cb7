package cache

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

func testLogger() zerolog.Logger { return zerolog.Nop() }

func setupTestRepo(t *testing.T) *Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(db)
	require.NoError(t, err)
	return repo
}

type cachedScore struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

func TestStoreAndGetFresh(t *testing.T) {
	repo := setupTestRepo(t)

	stored := cachedScore{Score: 72.5, Reasons: []string{"Strong Moon phase"}}
	require.NoError(t, repo.Store("abc123def456abcd", stored, time.Hour))

	raw, err := repo.GetIfFresh("abc123def456abcd")
	require.NoError(t, err)
	require.NotNil(t, raw)

	var got cachedScore
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, stored, got)
}

func TestGetIfFreshUnknownKey(t *testing.T) {
	repo := setupTestRepo(t)

	raw, err := repo.GetIfFresh("missing")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestGetIfFreshExpired(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("stale", cachedScore{Score: 50}, -time.Minute))

	raw, err := repo.GetIfFresh("stale")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestStoreUpserts(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("key", cachedScore{Score: 40}, time.Hour))
	require.NoError(t, repo.Store("key", cachedScore{Score: 80}, time.Hour))

	raw, err := repo.GetIfFresh("key")
	require.NoError(t, err)

	var got cachedScore
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 80.0, got.Score)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("key", cachedScore{Score: 40}, time.Hour))
	require.NoError(t, repo.Delete("key"))

	raw, err := repo.GetIfFresh("key")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDeleteExpired(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("fresh", cachedScore{Score: 60}, time.Hour))
	require.NoError(t, repo.Store("stale1", cachedScore{Score: 50}, -time.Minute))
	require.NoError(t, repo.Store("stale2", cachedScore{Score: 55}, -time.Hour))

	deleted, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	raw, err := repo.GetIfFresh("fresh")
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

type spyCheckpointer struct {
	modes []string
	err   error
}

func (c *spyCheckpointer) WALCheckpoint(mode string) error {
	c.modes = append(c.modes, mode)
	return c.err
}

func TestCleanupJobRun(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("stale", cachedScore{Score: 50}, -time.Minute))

	ckpt := &spyCheckpointer{}
	job := NewCleanupJob(repo, ckpt, testLogger())
	assert.Equal(t, "score_cache_cleanup", job.Name())
	job.Run()

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, []string{"TRUNCATE"}, ckpt.modes)
}

func TestCleanupJobNilCheckpointer(t *testing.T) {
	repo := setupTestRepo(t)

	job := NewCleanupJob(repo, nil, testLogger())
	job.Run()

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
