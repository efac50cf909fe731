package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	domainChat "github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/application/ingest"
)

// AskAssistantInput is the ask_assistant tool input.
type AskAssistantInput struct {
	Query    string `json:"query" jsonschema:"the question to ask"`
	Language string `json:"language,omitempty" jsonschema:"optional language tag, en or ne"`
}

// AskAssistantOutput is the ask_assistant tool output.
type AskAssistantOutput struct {
	Success bool   `json:"success" jsonschema:"whether generation succeeded"`
	Answer  string `json:"answer" jsonschema:"the assistant's answer"`
}

func (s *MCPServer) askAssistantTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AskAssistantInput,
) (*mcp.CallToolResult, AskAssistantOutput, error) {
	var perception *domainChat.Perception
	if input.Language != "" {
		perception = &domainChat.Perception{Language: input.Language}
	}

	result := s.service.Chat(ctx, input.Query, false, perception)

	return nil, AskAssistantOutput{
		Success: result.Success,
		Answer:  result.Answer,
	}, nil
}

// SearchKnowledgeInput is the search_knowledge tool input.
type SearchKnowledgeInput struct {
	Query string `json:"query" jsonschema:"what to look up in the knowledge base"`
}

// SearchKnowledgeOutput is the search_knowledge tool output.
type SearchKnowledgeOutput struct {
	Context string `json:"context" jsonschema:"retrieved passages with source sections, empty when nothing matched"`
	Found   bool   `json:"found" jsonschema:"whether any passage matched"`
}

func (s *MCPServer) searchKnowledgeTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchKnowledgeInput,
) (*mcp.CallToolResult, SearchKnowledgeOutput, error) {
	retrieved := s.retriever.Search(ctx, input.Query)

	return nil, SearchKnowledgeOutput{
		Context: retrieved,
		Found:   retrieved != "",
	}, nil
}

// DaemonStatusInput is the get_daemon_status tool input.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the get_daemon_status tool output.
type DaemonStatusOutput struct {
	Status     string             `json:"status" jsonschema:"daemon running state"`
	Version    string             `json:"version" jsonschema:"daemon version"`
	Sessions   int                `json:"sessions" jsonschema:"live websocket sessions"`
	IndexStats *ingest.IndexStats `json:"index_stats,omitempty" jsonschema:"knowledge index statistics"`
}

func (s *MCPServer) getDaemonStatusTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DaemonStatusInput,
) (*mcp.CallToolResult, DaemonStatusOutput, error) {
	output := DaemonStatusOutput{
		Status:   "running",
		Version:  "v0.1.0",
		Sessions: s.hub.Count(),
	}

	if stats, err := s.indexer.Stats(); err == nil {
		output.IndexStats = stats
	}

	return nil, output, nil
}
