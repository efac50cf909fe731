package http

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/interfaces/http/handler"
)

// ProviderSet is the HTTP interface providers.
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	NewServer,
)
