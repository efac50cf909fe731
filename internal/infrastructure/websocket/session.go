package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/adarsha-ai/backend/internal/domain/chat"
)

// maxHistoryEntries caps per-session history growth. Older turns fall
// off the front.
const maxHistoryEntries = 20

// Session is the per-connection conversation state. One goroutine
// reads the socket; generation runs on another, so everything is
// mutex-guarded.
type Session struct {
	ID string

	mu      sync.Mutex
	history []chat.Turn

	// cancel aborts the in-flight generation on barge-in; genCtx
	// identifies which generation owns it.
	cancel context.CancelFunc
	genCtx context.Context
}

// NewSession creates a session with a fresh ID.
func NewSession() *Session {
	return &Session{
		ID: uuid.New().String(),
	}
}

// AppendTurn records one turn, trimming the oldest entries past the cap.
func (s *Session) AppendTurn(role chat.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, chat.Turn{Role: role, Content: content})
	if len(s.history) > maxHistoryEntries {
		s.history = s.history[len(s.history)-maxHistoryEntries:]
	}
}

// History returns a copy of the conversation so far.
func (s *Session) History() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]chat.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// BeginGeneration cancels any in-flight generation and derives a new
// context for the next one.
func (s *Session) BeginGeneration(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.genCtx = ctx
	return ctx
}

// EndGeneration releases the generation context once its stream has
// finished. A no-op when ctx is no longer the in-flight generation:
// a newer BeginGeneration owns the slot by then.
func (s *Session) EndGeneration(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.genCtx != ctx || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.genCtx = nil
}

// Interrupt aborts the in-flight generation without starting a new one.
func (s *Session) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.genCtx = nil
	}
}

// Hub tracks live sessions by ID.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
	}
}

// Register adds a session.
func (h *Hub) Register(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[session.ID] = session
}

// Unregister removes a session and aborts any in-flight generation.
func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[session.ID]; ok {
		session.Interrupt()
		delete(h.sessions, session.ID)
	}
}

// Count reports the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
