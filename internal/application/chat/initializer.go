package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
)

// StoreBootstrap lazily brings up the vector store: start or connect
// qdrant, probe the embedding dimension, ensure the collection exists.
// Idempotent; a second call returns the first outcome.
type StoreBootstrap struct {
	manager  *vector.Manager
	store    *vector.Store
	embedder *embedding.Client

	once sync.Once
	err  error
}

var _ StoreInitializer = (*StoreBootstrap)(nil)

// NewStoreBootstrap creates the bootstrap.
func NewStoreBootstrap(manager *vector.Manager, store *vector.Store, embedder *embedding.Client) *StoreBootstrap {
	return &StoreBootstrap{
		manager:  manager,
		store:    store,
		embedder: embedder,
	}
}

// EnsureReady runs the bring-up exactly once.
func (b *StoreBootstrap) EnsureReady(ctx context.Context) error {
	b.once.Do(func() {
		if err := b.manager.Start(); err != nil {
			b.err = fmt.Errorf("failed to start vector store: %w", err)
			return
		}

		dimension, err := b.embedder.GetVectorDimension(ctx)
		if err != nil {
			b.err = fmt.Errorf("failed to probe embedding dimension: %w", err)
			return
		}

		if err := b.manager.EnsureCollection(b.store.Collection(), uint64(dimension)); err != nil {
			b.err = fmt.Errorf("failed to ensure collection: %w", err)
			return
		}
	})

	return b.err
}
