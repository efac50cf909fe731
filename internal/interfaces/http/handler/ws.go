package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"log/slog"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	appChat "github.com/adarsha-ai/backend/internal/application/chat"
	domainChat "github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/infrastructure/websocket"
)

const (
	eventTextQuery  = "text_query"
	eventVoiceQuery = "voice_query"
	eventToken      = "token"
	eventStreamEnd  = "stream_end"
	eventError      = "error"

	// perceptionHistoryWindow limits how much session history rides
	// along with each query.
	perceptionHistoryWindow = 10
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsEnvelope is the wire format in both directions.
type wsEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// wsQuery is the inbound payload of text_query / voice_query.
type wsQuery struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// WSHandler upgrades connections and runs the per-session query loop.
// A new query or a disconnect cancels the in-flight stream.
type WSHandler struct {
	service *appChat.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewWSHandler creates the websocket handler.
func NewWSHandler(service *appChat.Service, hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		logger:  log.NewModuleLogger("http", "ws_handler"),
	}
}

// Serve handles one websocket connection.
// GET /ws
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := websocket.NewSession()
	h.hub.Register(session)
	defer h.hub.Unregister(session)

	h.logger.Info("WebSocket session opened", "session_id", session.ID)

	var writeMu sync.Mutex
	send := func(event string, data interface{}) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(wsEnvelope{Event: event, Data: payload})
	}

	var queryWG sync.WaitGroup
	defer queryWG.Wait()

	for {
		var envelope wsEnvelope
		if err := conn.ReadJSON(&envelope); err != nil {
			h.logger.Info("WebSocket session closed", "session_id", session.ID)
			return
		}

		switch envelope.Event {
		case eventTextQuery, eventVoiceQuery:
			var query wsQuery
			if err := json.Unmarshal(envelope.Data, &query); err != nil || query.Query == "" {
				send(eventError, gin.H{"message": "invalid query payload"})
				continue
			}

			isVoice := envelope.Event == eventVoiceQuery
			ctx := session.BeginGeneration(c.Request.Context())

			queryWG.Add(1)
			go func() {
				defer queryWG.Done()
				h.answer(ctx, session, send, query, isVoice)
			}()

		default:
			send(eventError, gin.H{"message": "unknown event: " + envelope.Event})
		}
	}
}

// answer streams one response back over the socket.
func (h *WSHandler) answer(ctx context.Context, session *websocket.Session, send func(string, interface{}) error, query wsQuery, isVoice bool) {
	perception := &domainChat.Perception{
		Language: query.Language,
		History:  historyWindow(session.History()),
	}

	stream := h.service.ChatStream(ctx, query.Query, isVoice, perception)
	defer stream.Close()

	var full string
	for {
		token, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			send(eventError, gin.H{"message": err.Error()})
			return
		}
		if ctx.Err() != nil {
			// barge-in: a newer query took over
			return
		}
		full += token
		if err := send(eventToken, gin.H{"token": token}); err != nil {
			return
		}
	}

	if ctx.Err() != nil {
		// barged-in turns never reach the history
		return
	}
	session.EndGeneration(ctx)

	session.AppendTurn(domainChat.RoleUser, query.Query)
	session.AppendTurn(domainChat.RoleAssistant, full)

	send(eventStreamEnd, gin.H{"response": full})
}

// historyWindow keeps only the trailing turns. The result is never nil
// so a fresh session still overrides the service-level history.
func historyWindow(history []domainChat.Turn) []domainChat.Turn {
	if len(history) > perceptionHistoryWindow {
		return history[len(history)-perceptionHistoryWindow:]
	}
	return history
}
