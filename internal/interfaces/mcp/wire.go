package mcp

import "github.com/google/wire"

// ProviderSet is the MCP interface providers.
var ProviderSet = wire.NewSet(
	NewServer,
)
