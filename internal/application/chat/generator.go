package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/llm"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// apologyMessage is the user-facing failure answer. Generation failures
// never surface as errors.
const apologyMessage = "I apologize, but my cognitive processor encountered a connection error. Please try again."

// CompletionClient is the slice of the llm client the generator needs.
type CompletionClient interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
	StreamCompletion(ctx context.Context, req llm.CompletionRequest) (*llm.Stream, error)
	RotateKey() int
}

// Generator invokes the generative model and owns the failure policy:
// on any provider failure it rotates the shared key pool and answers
// with an apology instead of an error. The rotated key serves the next
// call; the failed call is not retried. Caller cancellation is not a
// provider failure and never rotates.
type Generator struct {
	client  CompletionClient
	cleaner *Cleaner
	topP    float64
	logger  *slog.Logger
}

// NewGenerator creates the generator.
func NewGenerator(client CompletionClient, cleaner *Cleaner, cfg *config.Config) *Generator {
	return &Generator{
		client:  client,
		cleaner: cleaner,
		topP:    cfg.Generation.TopP,
		logger:  log.NewModuleLogger("chat", "generator"),
	}
}

// Generate performs one blocking completion.
func (g *Generator) Generate(ctx context.Context, messages []chat.Message, classification chat.Classification) chat.Result {
	answer, err := g.client.Complete(ctx, g.buildRequest(messages, classification))
	if err != nil {
		if ctx.Err() == nil {
			g.logger.Error("Generation failed, rotating key",
				"error", err,
			)
			g.client.RotateKey()
		}
		return chat.Result{
			Success: false,
			Answer:  apologyMessage,
			Reason:  classifyFailure(err),
		}
	}

	return chat.Result{
		Success: true,
		Answer:  answer,
	}
}

// TokenStream is a pull-based sequence of cleaned tokens. Finite and
// non-restartable; Close releases the network stream and is safe after
// the sequence ends.
type TokenStream struct {
	generator *Generator
	ctx       context.Context
	stream    *llm.Stream
	isVoice   bool
	failed    bool
	done      bool
}

// GenerateStream opens a streaming completion. When the stream cannot
// even be opened, the returned TokenStream yields exactly one apology
// token. If isVoice, each token passes through the per-token cleaner.
func (g *Generator) GenerateStream(ctx context.Context, messages []chat.Message, classification chat.Classification, isVoice bool) *TokenStream {
	stream, err := g.client.StreamCompletion(ctx, g.buildRequest(messages, classification))
	if err != nil {
		if ctx.Err() == nil {
			g.logger.Error("Failed to open generation stream, rotating key",
				"error", err,
			)
			g.client.RotateKey()
		}
		return &TokenStream{generator: g, ctx: ctx, isVoice: isVoice, failed: true}
	}

	return &TokenStream{generator: g, ctx: ctx, stream: stream, isVoice: isVoice}
}

// Recv returns the next token. io.EOF ends the sequence. A mid-stream
// provider failure rotates the key, yields one apology token, then
// ends. Caller cancellation just ends the sequence: the key is
// healthy, so the pool stays put.
func (t *TokenStream) Recv() (string, error) {
	if t.done {
		return "", io.EOF
	}

	if t.failed {
		t.done = true
		if t.ctx.Err() != nil {
			return "", io.EOF
		}
		return apologyMessage, nil
	}

	tok, err := t.stream.Recv()
	if err == io.EOF {
		t.done = true
		return "", io.EOF
	}
	if err != nil {
		t.stream.Close()
		t.done = true
		if t.ctx.Err() != nil {
			return "", io.EOF
		}
		t.generator.logger.Error("Generation stream broke, rotating key",
			"error", err,
		)
		t.generator.client.RotateKey()
		return apologyMessage, nil
	}

	if t.isVoice {
		tok = t.generator.cleaner.CleanTokenForVoice(tok)
	}
	return tok, nil
}

// Close releases the underlying stream. Required on early abandonment.
func (t *TokenStream) Close() error {
	t.done = true
	if t.stream != nil {
		return t.stream.Close()
	}
	return nil
}

func (g *Generator) buildRequest(messages []chat.Message, classification chat.Classification) llm.CompletionRequest {
	wireMessages := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		wireMessages = append(wireMessages, llm.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	return llm.CompletionRequest{
		Messages:    wireMessages,
		MaxTokens:   classification.MaxTokens,
		Temperature: classification.Temperature,
		TopP:        g.topP,
	}
}

func classifyFailure(err error) chat.FailureReason {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no choices"):
		return chat.ReasonNoChoices
	case strings.Contains(msg, "returned status"):
		return chat.ReasonBadStatus
	default:
		return chat.ReasonTransport
	}
}
