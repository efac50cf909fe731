package handler

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/adarsha-ai/backend/internal/application/ingest"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
	"github.com/adarsha-ai/backend/internal/infrastructure/websocket"
	"github.com/adarsha-ai/backend/internal/interfaces/http/response"
)

// StatsHandler serves health and knowledge-base statistics.
type StatsHandler struct {
	indexer *ingest.Indexer
	store   *vector.Store
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewStatsHandler creates the stats handler.
func NewStatsHandler(indexer *ingest.Indexer, store *vector.Store, hub *websocket.Hub) *StatsHandler {
	return &StatsHandler{
		indexer: indexer,
		store:   store,
		hub:     hub,
		logger:  log.NewModuleLogger("http", "stats_handler"),
	}
}

// Health reports liveness plus a coarse view of the knowledge store.
// GET /health
func (h *StatsHandler) Health(c *gin.Context) {
	payload := gin.H{
		"status":   "ok",
		"sessions": h.hub.Count(),
	}

	if count, err := h.store.Count(c.Request.Context()); err == nil {
		payload["documents"] = count
		payload["store"] = "connected"
	} else {
		payload["store"] = "unavailable"
	}

	c.JSON(http.StatusOK, payload)
}

// Stats reports what the metadata database knows about the index.
// GET /api/v1/knowledge/stats
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.indexer.Stats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 500, err.Error())
		return
	}
	response.Success(c, stats)
}

// ReindexRequest is the body of the reindex endpoint.
type ReindexRequest struct {
	Force bool `json:"force,omitempty"`
}

// Reindex triggers a full ingestion run of the configured data file.
// POST /api/v1/knowledge/reindex
func (h *StatsHandler) Reindex(c *gin.Context) {
	var req ReindexRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, 400, err.Error())
			return
		}
	}

	result, err := h.indexer.Index(c.Request.Context(), req.Force)
	if err != nil {
		h.logger.Warn("Reindex failed", "error", err)
		response.Error(c, http.StatusInternalServerError, 500, err.Error())
		return
	}
	response.Success(c, result)
}
