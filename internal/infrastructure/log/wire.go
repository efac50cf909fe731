package log

import "github.com/google/wire"

// ProviderSet for the logging infrastructure
var ProviderSet = wire.NewSet(
	NewConfigFromEnv,
)
