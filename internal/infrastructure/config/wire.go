package config

import "github.com/google/wire"

// ProviderSet provides the configuration tree.
var ProviderSet = wire.NewSet(
	NewConfig,
	NewServerConfig,
	NewStoreConfig,
	NewDatabaseConfig,
	LoadKeys,
)
