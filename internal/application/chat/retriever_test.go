package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
)

type stubEmbedder struct {
	vector []float32
	err    error
	gotText string
}

func (s *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	s.gotText = text
	return s.vector, s.err
}

type stubSearcher struct {
	docs []knowledge.ScoredDoc
	err  error
	gotK int
}

func (s *stubSearcher) Query(_ context.Context, _ []float32, topK int) ([]knowledge.ScoredDoc, error) {
	s.gotK = topK
	return s.docs, s.err
}

func retrieverWith(embedder Embedder, searcher Searcher) *Retriever {
	cfg := &config.Config{Retrieval: config.RetrievalConfig{TopK: 5}}
	return NewRetriever(embedder, searcher, cfg)
}

func TestSearchConcatenatesWithSourceLabels(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1, 0.2}}
	searcher := &stubSearcher{docs: []knowledge.ScoredDoc{
		{Text: "The school was founded in 1995.", Section: "History", Score: 0.92},
		{Text: "The principal is Mr. Regmi.", Section: "", Score: 0.88},
	}}

	got := retrieverWith(embedder, searcher).Search(context.Background(), "  Tell Me About History  ")

	assert.Equal(t,
		"[SOURCE: History]\nThe school was founded in 1995.\n\n---\n\n[SOURCE: General Info]\nThe principal is Mr. Regmi.",
		got)
	// query is normalized before embedding
	assert.Equal(t, "tell me about history", embedder.gotText)
	assert.Equal(t, 5, searcher.gotK)
}

func TestSearchEmptyStoreReturnsEmpty(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	searcher := &stubSearcher{docs: nil}

	got := retrieverWith(embedder, searcher).Search(context.Background(), "anything")
	assert.Equal(t, "", got)
}

func TestSearchEmbeddingFailureDegrades(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding api down")}
	searcher := &stubSearcher{}

	got := retrieverWith(embedder, searcher).Search(context.Background(), "anything")
	assert.Equal(t, "", got)
}

func TestSearchStoreFailureDegrades(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	searcher := &stubSearcher{err: errors.New("collection not found")}

	got := retrieverWith(embedder, searcher).Search(context.Background(), "anything")
	assert.Equal(t, "", got)
}

func TestSearchBlankQueryReturnsEmpty(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	searcher := &stubSearcher{}

	got := retrieverWith(embedder, searcher).Search(context.Background(), "   ")
	assert.Equal(t, "", got)
}
