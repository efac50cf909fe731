package knowledge

// Chunk is one passage of the knowledge base as stored in the vector
// collection. Chunks are immutable once written; retrieval never
// mutates them.
type Chunk struct {
	ID       string
	Text     string
	Metadata ChunkMetadata
}

// ChunkMetadata is the payload attached to each chunk at ingestion
// time. Section carries the heading path the chunk was cut from so
// retrieval can label its sources.
type ChunkMetadata struct {
	Section     string
	SectionPath string
	Keywords    []string
	Index       int
	CharCount   int
	WordCount   int
}

// ScoredDoc is one nearest-neighbor hit returned by the vector store.
type ScoredDoc struct {
	Text    string
	Section string
	Score   float32
}

// IndexRecord tracks a chunk written to the store, kept in the local
// metadata database for incremental re-indexing and stats.
type IndexRecord struct {
	ChunkID     string
	Section     string
	ContentHash string
	CharCount   int
	WordCount   int
	IndexedAt   int64
}

// SourceFile tracks the ingested data file so unchanged files can be
// skipped on re-index.
type SourceFile struct {
	Path        string
	Mtime       int64
	ContentHash string
	ChunkCount  int
	IndexedAt   int64
}
