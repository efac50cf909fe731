package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/interfaces/http/handler"
	"github.com/adarsha-ai/backend/internal/interfaces/http/middleware"
	"github.com/adarsha-ai/backend/internal/interfaces/mcp"
)

// HTTPServer is the daemon's HTTP surface.
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer wires routes onto a gin engine.
func NewServer(
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WSHandler,
	statsHandler *handler.StatsHandler,
	mcpServer *mcp.MCPServer,
	cfg *config.ServerConfig,
) *HTTPServer {
	router := gin.Default()
	router.Use(middleware.NormalizeBody())

	logger := log.NewModuleLogger("http", "server")

	api := router.Group("/api/v1")
	{
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/stream", chatHandler.ChatStream)

		api.GET("/knowledge/stats", statsHandler.Stats)
		api.POST("/knowledge/reindex", statsHandler.Reindex)
	}

	router.GET("/ws", wsHandler.Serve)

	// health probe, also used by the singleton port lock
	router.GET("/health", statsHandler.Health)

	if mcpServer != nil {
		router.Any("/mcp/sse", gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router:   router,
		httpPort: cfg.HTTPPort,
		logger:   logger,
	}
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown drains connections until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop shuts down with a bounded grace period.
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
