package vector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// Store reads and writes the knowledge collection.
type Store struct {
	manager    *Manager
	collection string
	logger     *slog.Logger
}

// NewStore creates the store over the managed connection.
func NewStore(manager *Manager, cfg *config.StoreConfig) *Store {
	return &Store{
		manager:    manager,
		collection: cfg.Collection,
		logger:     log.NewModuleLogger("vector", "store"),
	}
}

// Collection returns the collection name the store operates on.
func (s *Store) Collection() string {
	return s.collection
}

// Upsert writes chunks with their vectors into the collection.
func (s *Store) Upsert(ctx context.Context, chunks []*knowledge.Chunk, vectors [][]float32) error {
	client := s.manager.Client()
	if client == nil {
		return fmt.Errorf("qdrant client not initialized")
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":         chunk.Text,
				"section":      chunk.Metadata.Section,
				"section_path": chunk.Metadata.SectionPath,
				"chunk_index":  int64(chunk.Metadata.Index),
				"char_count":   int64(chunk.Metadata.CharCount),
				"word_count":   int64(chunk.Metadata.WordCount),
			}),
		})
	}

	_, err := client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Query runs a nearest-neighbor search and returns scored documents in
// descending score order.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]knowledge.ScoredDoc, error) {
	client := s.manager.Client()
	if client == nil {
		return nil, fmt.Errorf("qdrant client not initialized")
	}

	limit := uint64(topK)
	points, err := client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	docs := make([]knowledge.ScoredDoc, 0, len(points))
	for _, point := range points {
		doc := knowledge.ScoredDoc{
			Score: point.Score,
		}
		if payload := point.Payload; payload != nil {
			if v, ok := payload["text"]; ok {
				doc.Text = v.GetStringValue()
			}
			if v, ok := payload["section"]; ok {
				doc.Section = v.GetStringValue()
			}
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Count reports the number of points in the collection.
func (s *Store) Count(ctx context.Context) (uint64, error) {
	client := s.manager.Client()
	if client == nil {
		return 0, fmt.Errorf("qdrant client not initialized")
	}

	count, err := client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}

	return count, nil
}

// Clear deletes and recreates the collection before a full re-index.
func (s *Store) Clear(ctx context.Context, vectorSize uint64) error {
	client := s.manager.Client()
	if client == nil {
		return fmt.Errorf("qdrant client not initialized")
	}

	if err := client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return s.manager.EnsureCollection(s.collection, vectorSize)
}
