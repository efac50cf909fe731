package chat

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	"github.com/adarsha-ai/backend/internal/infrastructure/llm"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
)

// ProviderSet wires the chat pipeline.
var ProviderSet = wire.NewSet(
	NewClassifier,
	NewCleaner,
	NewRetriever,
	NewPromptBuilder,
	NewGenerator,
	NewStoreBootstrap,
	NewService,
	wire.Bind(new(Embedder), new(*embedding.Client)),
	wire.Bind(new(Searcher), new(*vector.Store)),
	wire.Bind(new(CompletionClient), new(*llm.Client)),
	wire.Bind(new(StoreInitializer), new(*StoreBootstrap)),
)
