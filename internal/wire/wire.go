//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/adarsha-ai/backend/internal/application"
	"github.com/adarsha-ai/backend/internal/infrastructure"
	"github.com/adarsha-ai/backend/internal/interfaces"
)

// InitializeApp builds the daemon (HTTP + MCP + pipeline).
func InitializeApp() (*App, error) {
	wire.Build(
		infrastructure.ProviderSet,
		application.ProviderSet,
		interfaces.ProviderSet,
		NewApp,
	)
	return nil, nil
}
