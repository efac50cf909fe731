package websocket

import "github.com/google/wire"

// ProviderSet provides the session hub.
var ProviderSet = wire.NewSet(
	NewHub,
)
