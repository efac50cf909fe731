package application

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/application/chat"
	"github.com/adarsha-ai/backend/internal/application/ingest"
)

// ProviderSet is the application layer providers.
var ProviderSet = wire.NewSet(
	chat.ProviderSet,
	ingest.ProviderSet,
)
