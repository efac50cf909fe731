package interfaces

import (
	"github.com/adarsha-ai/backend/internal/interfaces/http"
	"github.com/adarsha-ai/backend/internal/interfaces/mcp"
)

// HTTPServer re-exports the HTTP server for the wire app.
type HTTPServer = http.HTTPServer

// MCPServer re-exports the MCP server for the wire app.
type MCPServer = mcp.MCPServer
