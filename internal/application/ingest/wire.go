package ingest

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
)

// ProviderSet is the ingest application providers.
var ProviderSet = wire.NewSet(
	NewIndexer,
	wire.Bind(new(Embedder), new(*embedding.Client)),
	wire.Bind(new(VectorWriter), new(*vector.Store)),
)
