package infrastructure

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	"github.com/adarsha-ai/backend/internal/infrastructure/llm"
	"github.com/adarsha-ai/backend/internal/infrastructure/storage"
	"github.com/adarsha-ai/backend/internal/infrastructure/token"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
	"github.com/adarsha-ai/backend/internal/infrastructure/websocket"
)

// ProviderSet is the infrastructure layer providers.
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	embedding.ProviderSet,
	llm.ProviderSet,
	vector.ProviderSet,
	token.ProviderSet,
	websocket.ProviderSet,
)
