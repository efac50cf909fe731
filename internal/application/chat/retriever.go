package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// contextSeparator joins retrieved passages in the prompt context.
const contextSeparator = "\n\n---\n\n"

// Embedder vectorizes query text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs nearest-neighbor queries against the knowledge store.
type Searcher interface {
	Query(ctx context.Context, vector []float32, topK int) ([]knowledge.ScoredDoc, error)
}

// Retriever embeds the query and collects top-k passages as one
// context string. Retrieval is advisory: every failure degrades to an
// empty context instead of surfacing an error.
type Retriever struct {
	embedder Embedder
	store    Searcher
	topK     int
	logger   *slog.Logger
}

// NewRetriever creates the retriever.
func NewRetriever(embedder Embedder, store Searcher, cfg *config.Config) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		topK:     cfg.Retrieval.TopK,
		logger:   log.NewModuleLogger("chat", "retriever"),
	}
}

// Search returns the concatenated context for a query, or "" when the
// store is empty, unreachable, or the embedding call fails.
func (r *Retriever) Search(ctx context.Context, query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return ""
	}

	queryVector, err := r.embedder.EmbedText(ctx, normalized)
	if err != nil {
		r.logger.Warn("Embedding failed, continuing without context",
			"error", err,
		)
		return ""
	}

	docs, err := r.store.Query(ctx, queryVector, r.topK)
	if err != nil {
		r.logger.Warn("Vector search failed, continuing without context",
			"error", err,
		)
		return ""
	}

	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		section := doc.Section
		if section == "" {
			section = "General Info"
		}
		parts = append(parts, fmt.Sprintf("[SOURCE: %s]\n%s", section, doc.Text))
	}

	return strings.Join(parts, contextSeparator)
}
