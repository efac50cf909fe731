package vector

import "github.com/google/wire"

// ProviderSet provides the vector store layer.
var ProviderSet = wire.NewSet(
	NewManager,
	NewStore,
)
