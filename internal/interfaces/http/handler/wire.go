package handler

import "github.com/google/wire"

// ProviderSet is the handler providers.
var ProviderSet = wire.NewSet(
	NewChatHandler,
	NewWSHandler,
	NewStatsHandler,
)
