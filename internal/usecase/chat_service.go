package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
	"concierge-service/pkg/metrics"
)

// agentUserPrefix derives the stable agent-side identity from the
// client session id.
const agentUserPrefix = "web_user_"

// ChatRequest is one inbound user message.
type ChatRequest struct {
	Query     string
	SessionID string
}

// ChatResult is the normalized response for one turn. SessionID is the
// client-managed id, not the remote one; clients echo it back to stay
// on the same conversation.
type ChatResult struct {
	SessionID        string
	DisplayText      string
	Suggestions      []string
	Itinerary        *entity.Itinerary
	ActiveSubAgents  []string
	RequiresFollowUp bool
	ErrorMessage     string
}

// ChatService orchestrates one chat turn: session resolution, a single
// stream drain through the extractor, and response composition.
type ChatService struct {
	engine   repository.AgentEngine
	sessions repository.SessionCache
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewChatService creates a new chat service
func NewChatService(engine repository.AgentEngine, sessions repository.SessionCache, metrics *metrics.Metrics, logger logger.Logger) *ChatService {
	return &ChatService{
		engine:   engine,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// Chat runs one turn against the remote agent. A mid-stream failure
// still returns whatever was collected, annotated with the error; the
// turn is never retried.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) *ChatResult {
	clientSessionID := req.SessionID
	if clientSessionID == "" {
		clientSessionID = uuid.NewString()
	}
	agentUserID := agentUserPrefix + clientSessionID

	sessionID := s.ResolveSession(ctx, agentUserID, clientSessionID)

	extractor := NewTurnExtractor()
	query := entity.AgentQuery{
		Message:   req.Query,
		UserID:    agentUserID,
		SessionID: sessionID,
	}

	start := time.Now()
	if err := s.engine.StreamQuery(ctx, query, extractor.Consume); err != nil {
		s.logger.Error("Agent stream failed", "userId", agentUserID, "sessionId", sessionID, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("stream_query").Inc()
		extractor.SetError(err)
	}
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	s.metrics.TurnsProcessed.Inc()

	turn := extractor.Result()
	if turn.DisplayText == "" && turn.ErrorMessage == "" {
		s.logger.Warn("Turn produced no display text", "userId", agentUserID, "events", turn.EventCount)
	}

	result := &ChatResult{
		SessionID:        clientSessionID,
		DisplayText:      turn.DisplayText,
		Suggestions:      turn.Suggestions,
		ActiveSubAgents:  turn.ActiveSubAgents,
		RequiresFollowUp: turn.RequiresFollowUp,
		ErrorMessage:     turn.ErrorMessage,
	}

	// The raw payload becomes the typed itinerary only if it passes
	// validation; text output survives either way.
	if len(turn.Itinerary) > 0 {
		itinerary, err := entity.ItineraryFromMap(turn.Itinerary)
		if err != nil {
			s.logger.Warn("Dropping malformed structured itinerary", "userId", agentUserID, "error", err)
		} else {
			result.Itinerary = itinerary
		}
	}

	return result
}

// ResolveSession returns the session id for the identity, creating a
// remote session on first use. When creation fails or returns no id
// the fallback id is adopted and cached, keeping the identity on one
// id for the life of the process.
func (s *ChatService) ResolveSession(ctx context.Context, agentUserID, fallbackID string) string {
	if sessionID, ok := s.sessions.Lookup(agentUserID); ok {
		return sessionID
	}

	sessionID, err := s.engine.CreateSession(ctx, agentUserID)
	if err != nil {
		s.logger.Warn("create_session failed, using fallback session id",
			"userId", agentUserID, "fallback", fallbackID, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("create_session").Inc()
		sessionID = fallbackID
	} else {
		s.metrics.SessionsCreated.Inc()
	}

	s.sessions.Store(agentUserID, sessionID)
	return sessionID
}
