package embedding

import "github.com/google/wire"

// ProviderSet provides the embedding client.
var ProviderSet = wire.NewSet(
	NewClient,
)
