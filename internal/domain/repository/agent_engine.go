package repository

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// EventHandler consumes one streamed agent event.
type EventHandler func(event entity.AgentEvent)

// AgentEngine defines the interface for the remote conversational
// agent. StreamQuery delivers events to the handler as they arrive;
// events handed over before a mid-stream failure stay delivered.
type AgentEngine interface {
	CreateSession(ctx context.Context, userID string) (string, error)
	StreamQuery(ctx context.Context, query entity.AgentQuery, handle EventHandler) error
}
