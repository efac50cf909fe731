package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
)

func newTestRepository(t *testing.T) knowledge.IndexRepository {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewIndexRepository(db)
}

func TestSaveAndCountRecords(t *testing.T) {
	repo := newTestRepository(t)

	count, err := repo.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	now := time.Now().Unix()
	records := []*knowledge.IndexRecord{
		{ChunkID: "c1", Section: "Introduction", ContentHash: "h1", CharCount: 120, WordCount: 20, IndexedAt: now},
		{ChunkID: "c2", Section: "Faculty", ContentHash: "h2", CharCount: 340, WordCount: 55, IndexedAt: now},
	}
	require.NoError(t, repo.SaveRecords(records))

	count, err = repo.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// upsert does not duplicate
	require.NoError(t, repo.SaveRecord(records[0]))
	count, err = repo.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSourceFileRoundtrip(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.GetSourceFile("/data/knowledge.txt")
	require.NoError(t, err)
	assert.Nil(t, got)

	file := &knowledge.SourceFile{
		Path:        "/data/knowledge.txt",
		Mtime:       1700000000,
		ContentHash: "abc123",
		ChunkCount:  42,
		IndexedAt:   time.Now().Unix(),
	}
	require.NoError(t, repo.SaveSourceFile(file))

	got, err = repo.GetSourceFile("/data/knowledge.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, file.ContentHash, got.ContentHash)
	assert.Equal(t, 42, got.ChunkCount)
}

func TestClearAll(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.SaveRecord(&knowledge.IndexRecord{
		ChunkID: "c1", Section: "s", ContentHash: "h", CharCount: 1, WordCount: 1, IndexedAt: 1,
	}))
	require.NoError(t, repo.SaveSourceFile(&knowledge.SourceFile{
		Path: "/p", Mtime: 1, ContentHash: "h", ChunkCount: 1, IndexedAt: 1,
	}))

	require.NoError(t, repo.ClearAll())

	count, err := repo.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	got, err := repo.GetSourceFile("/p")
	require.NoError(t, err)
	assert.Nil(t, got)
}
