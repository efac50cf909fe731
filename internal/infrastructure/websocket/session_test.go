package websocket

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adarsha-ai/backend/internal/domain/chat"
)

func TestSessionHistoryCap(t *testing.T) {
	session := NewSession()

	for i := 0; i < 30; i++ {
		session.AppendTurn(chat.RoleUser, fmt.Sprintf("message %d", i))
	}

	history := session.History()
	assert.Len(t, history, maxHistoryEntries)
	// oldest entries dropped
	assert.Equal(t, "message 10", history[0].Content)
	assert.Equal(t, "message 29", history[len(history)-1].Content)
}

func TestSessionHistoryIsCopy(t *testing.T) {
	session := NewSession()
	session.AppendTurn(chat.RoleUser, "hello")

	history := session.History()
	history[0].Content = "mutated"

	assert.Equal(t, "hello", session.History()[0].Content)
}

func TestBeginGenerationCancelsPrevious(t *testing.T) {
	session := NewSession()

	first := session.BeginGeneration(context.Background())
	second := session.BeginGeneration(context.Background())

	assert.Error(t, first.Err())
	assert.NoError(t, second.Err())

	session.Interrupt()
	assert.Error(t, second.Err())
}

func TestEndGenerationReleasesOwnContextOnly(t *testing.T) {
	session := NewSession()

	first := session.BeginGeneration(context.Background())
	second := session.BeginGeneration(context.Background())

	// a stale generation finishing must not abort its successor
	session.EndGeneration(first)
	assert.NoError(t, second.Err())

	session.EndGeneration(second)
	assert.Error(t, second.Err())
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	session := NewSession()

	hub.Register(session)
	assert.Equal(t, 1, hub.Count())

	ctx := session.BeginGeneration(context.Background())
	hub.Unregister(session)

	assert.Equal(t, 0, hub.Count())
	// unregister aborts in-flight generation
	assert.Error(t, ctx.Err())
}
