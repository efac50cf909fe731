package interfaces

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/interfaces/http"
	"github.com/adarsha-ai/backend/internal/interfaces/mcp"
)

// ProviderSet is the interfaces layer providers.
var ProviderSet = wire.NewSet(
	http.ProviderSet,
	mcp.ProviderSet,
)
