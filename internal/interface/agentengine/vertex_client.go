// internal/interface/agentengine/vertex_client.go
package agentengine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
)

// maxEventBytes bounds a single streamed event line. Itinerary events
// carry whole trip plans, so the default scanner limit is too small.
const maxEventBytes = 1024 * 1024

// VertexEngineClient talks to one deployed reasoning engine over REST
type VertexEngineClient struct {
	httpClient *http.Client
	baseURL    string
	resource   string
	logger     logger.Logger
}

// NewVertexEngineClient creates a client for the engine named by the
// full resource path (projects/{p}/locations/{l}/reasoningEngines/{id}).
// The token source supplies bearer credentials and the timeout bounds
// every call, including full stream drains.
func NewVertexEngineClient(ctx context.Context, location, resource string, tokenSource oauth2.TokenSource, timeout time.Duration, logger logger.Logger) repository.AgentEngine {
	httpClient := oauth2.NewClient(ctx, tokenSource)
	httpClient.Timeout = timeout

	return &VertexEngineClient{
		httpClient: httpClient,
		baseURL:    fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", location),
		resource:   resource,
		logger:     logger,
	}
}

// CreateSession creates a remote session for the user and returns its id
func (c *VertexEngineClient) CreateSession(ctx context.Context, userID string) (string, error) {
	body := map[string]interface{}{
		"class_method": "create_session",
		"input": map[string]interface{}{
			"user_id": userID,
		},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal create_session request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:query", c.baseURL, c.resource)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call create_session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("agent engine returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Output struct {
			ID string `json:"id"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode create_session response: %w", err)
	}
	if response.Output.ID == "" {
		return "", fmt.Errorf("create_session response carried no session id")
	}

	c.logger.Info("Created agent session", "userId", userID, "sessionId", response.Output.ID)
	return response.Output.ID, nil
}

// StreamQuery runs one turn and hands each streamed event to handle.
// Events delivered before a mid-stream failure stay delivered; the
// error is returned so the caller can annotate its partial result.
func (c *VertexEngineClient) StreamQuery(ctx context.Context, query entity.AgentQuery, handle repository.EventHandler) error {
	body := map[string]interface{}{
		"class_method": "stream_query",
		"input":        query,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal stream_query request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:streamQuery?alt=sse", c.baseURL, c.resource)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call stream_query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("agent engine returned status %d: %v", resp.StatusCode, errorBody)
	}

	// The engine streams one JSON event per line, with an optional
	// SSE "data:" prefix depending on the transport in front of it.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxEventBytes)

	events := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if line == "" {
			continue
		}

		var event entity.AgentEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			c.logger.Debug("Skipping undecodable stream line", "error", err)
			continue
		}
		events++
		handle(event)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream_query interrupted after %d events: %w", events, err)
	}

	c.logger.Debug("Drained stream_query", "events", events, "sessionId", query.SessionID)
	return nil
}
