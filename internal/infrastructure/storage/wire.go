package storage

import "github.com/google/wire"

// ProviderSet provides the local metadata storage layer.
var ProviderSet = wire.NewSet(
	OpenDB,
	NewIndexRepository,
)
