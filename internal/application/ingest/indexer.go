package ingest

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// One embedding request per this many chunks.
const embedBatchSize = 50

// Embedder vectorizes chunk texts in batches.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	GetVectorDimension(ctx context.Context) (int, error)
}

// VectorWriter is the write side of the vector collection.
type VectorWriter interface {
	Upsert(ctx context.Context, chunks []*knowledge.Chunk, vectors [][]float32) error
	Count(ctx context.Context) (uint64, error)
	Clear(ctx context.Context, vectorSize uint64) error
}

// IndexResult summarizes one indexing run.
type IndexResult struct {
	ChunkCount  int    `json:"chunk_count"`
	StoredCount uint64 `json:"stored_count"`
	Verified    bool   `json:"verified"`
	Skipped     bool   `json:"skipped"`
	SourcePath  string `json:"source_path"`
}

// Indexer ingests the knowledge data file: chunk, embed, upsert to the
// vector store, record metadata in sqlite. A run replaces the whole
// collection; the source file is small enough that incremental chunk
// diffing is not worth its complexity.
type Indexer struct {
	chunker  *Chunker
	embedder Embedder
	store    VectorWriter
	repo     knowledge.IndexRepository
	dataFile string
	logger   *slog.Logger
}

// NewIndexer creates the indexer.
func NewIndexer(embedder Embedder, store VectorWriter, repo knowledge.IndexRepository, cfg *config.Config) *Indexer {
	return &Indexer{
		chunker:  NewChunker(),
		embedder: embedder,
		store:    store,
		repo:     repo,
		dataFile: cfg.Knowledge.DataFile,
		logger:   log.NewModuleLogger("ingest", "indexer"),
	}
}

// Index runs a full ingestion of the configured data file. When force
// is false and the file's mtime and content hash match the last run,
// the run is skipped.
func (ix *Indexer) Index(ctx context.Context, force bool) (*IndexResult, error) {
	if ix.dataFile == "" {
		return nil, fmt.Errorf("no data file configured")
	}

	info, err := os.Stat(ix.dataFile)
	if err != nil {
		return nil, fmt.Errorf("data file not found: %w", err)
	}

	content, err := os.ReadFile(ix.dataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	contentHash := fmt.Sprintf("%x", sha256.Sum256(content))

	if !force {
		prev, err := ix.repo.GetSourceFile(ix.dataFile)
		if err == nil && prev != nil && prev.ContentHash == contentHash && prev.Mtime == info.ModTime().Unix() {
			ix.logger.Info("Data file unchanged, skipping index", "path", ix.dataFile)
			return &IndexResult{Skipped: true, SourcePath: ix.dataFile, ChunkCount: prev.ChunkCount}, nil
		}
	}

	chunks := ix.chunker.Chunk(string(content))
	if len(chunks) == 0 {
		return nil, fmt.Errorf("data file produced no chunks")
	}
	ix.logger.Info("Chunked data file", "path", ix.dataFile, "chunks", len(chunks))

	pointers := make([]*knowledge.Chunk, len(chunks))
	for i := range chunks {
		chunks[i].ID = uuid.New().String()
		pointers[i] = &chunks[i]
	}

	dim, err := ix.embedder.GetVectorDimension(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to probe vector dimension: %w", err)
	}

	if err := ix.store.Clear(ctx, uint64(dim)); err != nil {
		return nil, fmt.Errorf("failed to reset collection: %w", err)
	}

	for start := 0; start < len(pointers); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(pointers) {
			end = len(pointers)
		}
		batch := pointers[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := ix.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch at %d: %w", start, err)
		}

		if err := ix.store.Upsert(ctx, batch, vectors); err != nil {
			return nil, fmt.Errorf("failed to upsert batch at %d: %w", start, err)
		}

		ix.logger.Info("Stored batch", "progress", end, "total", len(pointers))
	}

	stored, err := ix.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stored points: %w", err)
	}
	verified := stored == uint64(len(pointers))
	if !verified {
		ix.logger.Warn("Stored count does not match chunk count",
			"expected", len(pointers),
			"stored", stored,
		)
	}

	if err := ix.saveMetadata(pointers, contentHash, info.ModTime().Unix()); err != nil {
		return nil, err
	}

	ix.logger.Info("Index complete",
		"chunks", len(pointers),
		"stored", stored,
		"verified", verified,
	)

	return &IndexResult{
		ChunkCount:  len(pointers),
		StoredCount: stored,
		Verified:    verified,
		SourcePath:  ix.dataFile,
	}, nil
}

func (ix *Indexer) saveMetadata(chunks []*knowledge.Chunk, contentHash string, mtime int64) error {
	if err := ix.repo.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear index records: %w", err)
	}

	indexedAt := time.Now().Unix()
	records := make([]*knowledge.IndexRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &knowledge.IndexRecord{
			ChunkID:     chunk.ID,
			Section:     chunk.Metadata.Section,
			ContentHash: contentHash,
			CharCount:   chunk.Metadata.CharCount,
			WordCount:   chunk.Metadata.WordCount,
			IndexedAt:   indexedAt,
		}
	}
	if err := ix.repo.SaveRecords(records); err != nil {
		return fmt.Errorf("failed to save index records: %w", err)
	}

	source := &knowledge.SourceFile{
		Path:        ix.dataFile,
		Mtime:       mtime,
		ContentHash: contentHash,
		ChunkCount:  len(chunks),
		IndexedAt:   indexedAt,
	}
	if err := ix.repo.SaveSourceFile(source); err != nil {
		return fmt.Errorf("failed to save source file record: %w", err)
	}

	return nil
}

// Stats reports what the local metadata database knows about the
// index. It never touches the network.
func (ix *Indexer) Stats() (*IndexStats, error) {
	count, err := ix.repo.CountRecords()
	if err != nil {
		return nil, err
	}

	stats := &IndexStats{TotalChunks: count}
	if ix.dataFile != "" {
		if source, err := ix.repo.GetSourceFile(ix.dataFile); err == nil && source != nil {
			stats.SourcePath = source.Path
			stats.LastIndexedAt = source.IndexedAt
		}
	}
	return stats, nil
}

// IndexStats is the stats payload surfaced over HTTP and MCP.
type IndexStats struct {
	TotalChunks   int    `json:"total_chunks"`
	SourcePath    string `json:"source_path,omitempty"`
	LastIndexedAt int64  `json:"last_indexed_at,omitempty"`
}
