package llm

import "github.com/google/wire"

// ProviderSet provides the generation client.
var ProviderSet = wire.NewSet(
	NewClient,
)
