package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appChat "github.com/adarsha-ai/backend/internal/application/chat"
	"github.com/adarsha-ai/backend/internal/application/ingest"
	"github.com/adarsha-ai/backend/internal/infrastructure/websocket"
)

// MCPServer exposes the assistant over the Model Context Protocol.
type MCPServer struct {
	server    *mcp.Server
	handler   http.Handler
	service   *appChat.Service
	retriever *appChat.Retriever
	indexer   *ingest.Indexer
	hub       *websocket.Hub
}

// NewServer creates the MCP server and registers the assistant tools.
func NewServer(
	service *appChat.Service,
	retriever *appChat.Retriever,
	indexer *ingest.Indexer,
	hub *websocket.Hub,
) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "adarsha-daemon",
			Version: "0.1.0",
		},
		nil,
	)

	mcpServer := &MCPServer{
		server:    server,
		service:   service,
		retriever: retriever,
		indexer:   indexer,
		hub:       hub,
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the Adarsha school assistant a question. Parameters: query (string, required) - the question in English or Nepali; language (string, optional) - language tag such as en or ne to force the answer language. Returns the assistant's answer and whether generation succeeded.",
	}, mcpServer.askAssistantTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the school knowledge base directly and return the raw retrieved passages with their source sections, without running generation. Parameters: query (string, required). Returns the concatenated context block, empty when nothing relevant is stored.",
	}, mcpServer.searchKnowledgeTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_daemon_status",
		Description: "Get the status of the Adarsha assistant daemon: running state, version, live websocket sessions, and knowledge index statistics. No parameters required.",
	}, mcpServer.getDaemonStatusTool)

	mcpServer.handler = mcp.NewSSEHandler(
		func(*http.Request) *mcp.Server {
			return server
		},
		nil,
	)

	return mcpServer
}

// GetHandler returns the SSE handler for mounting on the HTTP server.
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
