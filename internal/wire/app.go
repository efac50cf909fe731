package wire

import (
	"database/sql"

	"log/slog"

	appChat "github.com/adarsha-ai/backend/internal/application/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	applog "github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
	"github.com/adarsha-ai/backend/internal/infrastructure/websocket"
	"github.com/adarsha-ai/backend/internal/interfaces"
)

// App composes the daemon's long-lived services.
type App struct {
	HTTPServer  *interfaces.HTTPServer
	MCPServer   *interfaces.MCPServer
	ChatService *appChat.Service

	wsHub         *websocket.Hub
	vectorManager *vector.Manager
	keys          config.APIKeys
	db            *sql.DB
	logger        *slog.Logger
}

// NewApp creates the application instance.
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	chatService *appChat.Service,
	wsHub *websocket.Hub,
	vectorManager *vector.Manager,
	keys config.APIKeys,
	db *sql.DB,
) *App {
	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		ChatService:   chatService,
		wsHub:         wsHub,
		vectorManager: vectorManager,
		keys:          keys,
		db:            db,
		logger:        applog.NewModuleLogger("app", "main"),
	}
}

// Start brings the daemon up. The knowledge store connects lazily on
// the first query, so a down qdrant never blocks startup.
func (a *App) Start() error {
	a.logger.Info("Starting Adarsha backend application")

	if len(a.keys) == 0 {
		a.logger.Error("No Groq API keys configured, generation will fail. Set GROQ_API_KEY (and optional GROQ_API_KEY_BACKUP_1..19).")
	} else {
		a.logger.Info("API key pool loaded", "keys", len(a.keys))
	}

	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("HTTP server exited",
				"error", err,
			)
		}
	}()

	a.logger.Info("Adarsha backend application started")
	return nil
}

// Stop shuts the daemon down in reverse dependency order.
func (a *App) Stop() error {
	a.logger.Info("Stopping Adarsha backend application")

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	if a.vectorManager != nil {
		if err := a.vectorManager.Stop(); err != nil {
			a.logger.Error("Failed to stop vector store",
				"error", err,
			)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database connection",
				"error", err,
			)
			return err
		}
	}

	a.logger.Info("Adarsha backend application stopped")
	return nil
}
