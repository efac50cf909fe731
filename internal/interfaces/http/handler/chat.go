package handler

import (
	"io"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appChat "github.com/adarsha-ai/backend/internal/application/chat"
	domainChat "github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/interfaces/http/response"
)

// ChatHandler serves the blocking and SSE chat endpoints.
type ChatHandler struct {
	service *appChat.Service
	logger  *slog.Logger
}

// NewChatHandler creates the chat handler.
func NewChatHandler(service *appChat.Service) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  log.NewModuleLogger("http", "chat_handler"),
	}
}

// ChatRequest is the body of both chat endpoints.
type ChatRequest struct {
	Query    string            `json:"query" binding:"required"`
	IsVoice  bool              `json:"is_voice,omitempty"`
	Language string            `json:"language,omitempty"`
	History  []domainChat.Turn `json:"history,omitempty"`
}

// ChatResponse is the blocking endpoint payload.
type ChatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}

func (r *ChatRequest) perception() *domainChat.Perception {
	if r.Language == "" && r.History == nil {
		return nil
	}
	return &domainChat.Perception{
		Language: r.Language,
		History:  r.History,
	}
}

// Chat handles a blocking chat request.
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	result := h.service.Chat(c.Request.Context(), req.Query, req.IsVoice, req.perception())

	response.Success(c, ChatResponse{
		Success: result.Success,
		Answer:  result.Answer,
	})
}

// ChatStream handles a streaming chat request as SSE data frames
// terminated by [DONE].
// POST /api/v1/chat/stream
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	stream := h.service.ChatStream(c.Request.Context(), req.Query, req.IsVoice, req.perception())
	defer stream.Close()

	for {
		token, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.logger.Warn("Token stream aborted", "error", err)
			break
		}
		c.SSEvent("", token)
		c.Writer.Flush()
	}

	c.SSEvent("", "[DONE]")
	c.Writer.Flush()
}
