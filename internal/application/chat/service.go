package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// StoreInitializer connects the knowledge store once, lazily.
type StoreInitializer interface {
	EnsureReady(ctx context.Context) error
}

// Service orchestrates one query-to-answer pass: lazy store init,
// classification, retrieval, prompt assembly, generation, cleaning.
// Safe for concurrent callers; the pipeline itself holds no locks
// beyond the one-time initialization.
type Service struct {
	initializer StoreInitializer
	classifier  *Classifier
	retriever   *Retriever
	prompts     *PromptBuilder
	generator   *Generator
	cleaner     *Cleaner
	logger      *slog.Logger

	initOnce sync.Once
	initErr  error

	historyMu sync.Mutex
	history   []chat.Turn
}

// NewService wires the pipeline.
func NewService(initializer StoreInitializer, classifier *Classifier, retriever *Retriever, prompts *PromptBuilder, generator *Generator, cleaner *Cleaner) *Service {
	return &Service{
		initializer: initializer,
		classifier:  classifier,
		retriever:   retriever,
		prompts:     prompts,
		generator:   generator,
		cleaner:     cleaner,
		logger:      log.NewModuleLogger("chat", "service"),
	}
}

// ensureInitialized connects the store once. A failed first attempt is
// remembered; retrieval then degrades to empty context on every call.
func (s *Service) ensureInitialized(ctx context.Context) {
	s.initOnce.Do(func() {
		if s.initializer == nil {
			return
		}
		if err := s.initializer.EnsureReady(ctx); err != nil {
			s.initErr = err
			s.logger.Warn("Knowledge store initialization failed, answers will have no context",
				"error", err,
			)
		}
	})
}

// Chat answers a query in blocking mode. Never returns an error:
// failures surface as Success=false with an apology answer.
func (s *Service) Chat(ctx context.Context, query string, isVoice bool, perception *chat.Perception) chat.Result {
	s.ensureInitialized(ctx)

	classification := s.classifier.Classify(query)
	language := s.resolveLanguage(query, perception)
	history := s.resolveHistory(perception)

	logCtx := s.logger.With(
		"category", classification.Category,
		"language", language,
		"voice", isVoice,
	)

	retrieved := s.retrieveContext(ctx, query)
	messages := s.prompts.Build(query, retrieved, isVoice, history, language, perception)

	result := s.generator.Generate(ctx, messages, classification)
	if !result.Success {
		logCtx.Warn("Chat failed", "reason", result.Reason)
		return result
	}

	if isVoice {
		result.Answer = s.cleaner.CleanForVoice(result.Answer)
	} else {
		result.Answer = s.cleaner.CleanForText(result.Answer)
	}

	s.rememberTurns(perception, query, result.Answer)
	logCtx.Debug("Chat answered", "answer_len", len(result.Answer))

	return result
}

// ChatStream answers a query as a finite, non-restartable token
// sequence. Voice tokens arrive already lightly cleaned; the caller
// accumulates the full answer if it needs one.
func (s *Service) ChatStream(ctx context.Context, query string, isVoice bool, perception *chat.Perception) *TokenStream {
	s.ensureInitialized(ctx)

	classification := s.classifier.Classify(query)
	language := s.resolveLanguage(query, perception)
	history := s.resolveHistory(perception)

	retrieved := s.retrieveContext(ctx, query)
	messages := s.prompts.Build(query, retrieved, isVoice, history, language, perception)

	return s.generator.GenerateStream(ctx, messages, classification, isVoice)
}

func (s *Service) retrieveContext(ctx context.Context, query string) string {
	if s.initErr != nil {
		return ""
	}
	return s.retriever.Search(ctx, query)
}

// resolveLanguage prefers the caller-supplied tag, falling back to
// script detection on the query itself.
func (s *Service) resolveLanguage(query string, perception *chat.Perception) chat.Language {
	if perception != nil && perception.Language != "" {
		return chat.FromTag(perception.Language)
	}
	return chat.DetectLanguage(query)
}

// resolveHistory prefers the caller-supplied window for this call
// only; otherwise the service's internal history is used.
func (s *Service) resolveHistory(perception *chat.Perception) []chat.Turn {
	if perception != nil && perception.History != nil {
		return perception.History
	}

	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	out := make([]chat.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// rememberTurns appends to internal history only when the caller did
// not supply its own (external history is never merged back).
func (s *Service) rememberTurns(perception *chat.Perception, query, answer string) {
	if perception != nil && perception.History != nil {
		return
	}

	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	s.history = append(s.history,
		chat.Turn{Role: chat.RoleUser, Content: query},
		chat.Turn{Role: chat.RoleAssistant, Content: answer},
	)
	const maxInternalHistory = 20
	if len(s.history) > maxInternalHistory {
		s.history = s.history[len(s.history)-maxInternalHistory:]
	}
}
