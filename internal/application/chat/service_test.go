package chat

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/domain/knowledge"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
)

type stubInitializer struct {
	calls int
	err   error
}

func (s *stubInitializer) EnsureReady(context.Context) error {
	s.calls++
	return s.err
}

func newTestService(client CompletionClient, docs []knowledge.ScoredDoc, initializer StoreInitializer) *Service {
	cleaner := NewCleaner()
	embedder := &stubEmbedder{vector: []float32{0.1}}
	searcher := &stubSearcher{docs: docs}
	cfg := &config.Config{
		Retrieval:  config.RetrievalConfig{TopK: 5},
		Generation: config.GenerationConfig{TopP: 0.9},
	}

	return NewService(
		initializer,
		NewClassifier(),
		NewRetriever(embedder, searcher, cfg),
		NewPromptBuilder(nil),
		NewGenerator(client, cleaner, cfg),
		cleaner,
	)
}

func TestChatGreetingTextMode(t *testing.T) {
	client := &fakeClient{answer: "**Hello!** How can I help?"}
	service := newTestService(client, nil, &stubInitializer{})

	result := service.Chat(context.Background(), "Hi!", false, nil)

	require.True(t, result.Success)
	// text mode keeps markup
	assert.Equal(t, "**Hello!** How can I help?", result.Answer)
	// greeting budget was used
	assert.Equal(t, 100, client.gotReq.MaxTokens)
}

func TestChatSimpleVoiceMode(t *testing.T) {
	client := &fakeClient{answer: "**Mr. Ram Babu Regmi** is the Principal.\n\n\n- He leads the school."}
	docs := []knowledge.ScoredDoc{{Text: "Principal: Mr. Ram Babu Regmi", Section: "Staff"}}
	service := newTestService(client, docs, &stubInitializer{})

	result := service.Chat(context.Background(), "Who is the principal?", true, nil)

	require.True(t, result.Success)
	assert.Equal(t, "Mister Ram Babu Regmi is the Principal. He leads the school.", result.Answer)
	assert.Equal(t, 256, client.gotReq.MaxTokens)
	// retrieved context reached the prompt
	lastMsg := client.gotReq.Messages[len(client.gotReq.Messages)-1]
	assert.Contains(t, lastMsg.Content, "Principal: Mr. Ram Babu Regmi")
}

func TestChatFailureSurfacesApology(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	service := newTestService(client, nil, &stubInitializer{})

	result := service.Chat(context.Background(), "anything", false, nil)

	assert.False(t, result.Success)
	assert.Equal(t, apologyMessage, result.Answer)
	assert.Equal(t, 1, client.rotations)
}

func TestChatInitializesOnce(t *testing.T) {
	initializer := &stubInitializer{}
	client := &fakeClient{answer: "ok"}
	service := newTestService(client, nil, initializer)

	service.Chat(context.Background(), "one", false, nil)
	service.Chat(context.Background(), "two", false, nil)

	assert.Equal(t, 1, initializer.calls)
}

func TestChatInitFailureDegradesToNoContext(t *testing.T) {
	initializer := &stubInitializer{err: errors.New("qdrant unreachable")}
	client := &fakeClient{answer: "ok"}
	docs := []knowledge.ScoredDoc{{Text: "would be context", Section: "x"}}
	service := newTestService(client, docs, initializer)

	result := service.Chat(context.Background(), "Tell me about the history", false, nil)

	require.True(t, result.Success)
	lastMsg := client.gotReq.Messages[len(client.gotReq.Messages)-1]
	assert.Contains(t, lastMsg.Content, "No specific database records found")
}

func TestChatExternalHistoryOverride(t *testing.T) {
	client := &fakeClient{answer: "answer"}
	service := newTestService(client, nil, &stubInitializer{})

	// seed internal history
	service.Chat(context.Background(), "internal question", false, nil)

	external := &chat.Perception{History: []chat.Turn{
		{Role: chat.RoleUser, Content: "external question"},
		{Role: chat.RoleAssistant, Content: "external answer"},
	}}
	service.Chat(context.Background(), "follow-up", false, external)

	contents := make([]string, 0, len(client.gotReq.Messages))
	for _, m := range client.gotReq.Messages {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "external question")
	assert.NotContains(t, contents, "internal question")

	// the override was not persisted
	service.Chat(context.Background(), "third", false, nil)
	contents = contents[:0]
	for _, m := range client.gotReq.Messages {
		contents = append(contents, m.Content)
	}
	assert.NotContains(t, contents, "external question")
	assert.Contains(t, contents, "internal question")
}

func TestChatLanguageFromPerceptionTag(t *testing.T) {
	client := &fakeClient{answer: "ok"}
	service := newTestService(client, nil, &stubInitializer{})

	service.Chat(context.Background(), "hello", false, &chat.Perception{Language: "ne-NP"})

	assert.Contains(t, client.gotReq.Messages[0].Content, "Respond strictly in Nepali")
}

func TestChatLanguageDetectedFromScript(t *testing.T) {
	client := &fakeClient{answer: "ok"}
	service := newTestService(client, nil, &stubInitializer{})

	service.Chat(context.Background(), "नमस्ते", false, nil)

	assert.Contains(t, client.gotReq.Messages[0].Content, "Respond strictly in Nepali")
}

func TestChatStreamEndToEnd(t *testing.T) {
	server := sseServer(t, []string{"Mr", ".", " Regmi ", "is", " here."})
	defer server.Close()

	client := &fakeClient{streamSrv: server}
	service := newTestService(client, nil, &stubInitializer{})

	stream := service.ChatStream(context.Background(), "where is Regmi", true, nil)
	defer stream.Close()

	var tokens []string
	var full string
	for {
		tok, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		tokens = append(tokens, tok)
		full += tok
	}

	// no denylisted symbols, spacing preserved exactly
	assert.Equal(t, []string{"Mr", ".", " Regmi ", "is", " here."}, tokens)
	assert.Equal(t, "Mr. Regmi is here.", full)
}
