package agentengine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge-service/internal/domain/entity"
	"concierge-service/pkg/logger"
)

const testResource = "projects/p/locations/us-central1/reasoningEngines/42"

func newTestClient(server *httptest.Server) *VertexEngineClient {
	return &VertexEngineClient{
		httpClient: server.Client(),
		baseURL:    server.URL,
		resource:   testResource,
		logger:     logger.NewNop(),
	}
}

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/"+testResource+":query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			ClassMethod string `json:"class_method"`
			Input       struct {
				UserID string `json:"user_id"`
			} `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "create_session", req.ClassMethod)
		assert.Equal(t, "web_user_tab-1", req.Input.UserID)

		fmt.Fprint(w, `{"output":{"id":"sess-123","user_id":"web_user_tab-1"}}`)
	}))
	defer server.Close()

	sessionID, err := newTestClient(server).CreateSession(context.Background(), "web_user_tab-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-123", sessionID)
}

func TestCreateSessionMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"output":{}}`)
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateSession(context.Background(), "web_user_tab-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session id")
}

func TestCreateSessionHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"permission denied"}`)
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateSession(context.Background(), "web_user_tab-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestStreamQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testResource+":streamQuery", r.URL.Path)
		assert.Equal(t, "alt=sse", r.URL.RawQuery)

		var req struct {
			ClassMethod string `json:"class_method"`
			Input       struct {
				Message   string `json:"message"`
				UserID    string `json:"user_id"`
				SessionID string `json:"session_id"`
			} `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "stream_query", req.ClassMethod)
		assert.Equal(t, "plan a trip", req.Input.Message)
		assert.Equal(t, "web_user_tab-1", req.Input.UserID)
		assert.Equal(t, "sess-123", req.Input.SessionID)

		fmt.Fprint(w, `{"content":{"parts":[{"text":"Hello "}]}}`+"\n")
		fmt.Fprint(w, `data: {"content":{"parts":[{"text":"traveler."}]}}`+"\n")
		fmt.Fprint(w, "\n")
		fmt.Fprint(w, "this line is not json\n")
		fmt.Fprint(w, `{"suggestions":["Visit the market"]}`+"\n")
	}))
	defer server.Close()

	var events []entity.AgentEvent
	err := newTestClient(server).StreamQuery(context.Background(), entity.AgentQuery{
		Message:   "plan a trip",
		UserID:    "web_user_tab-1",
		SessionID: "sess-123",
	}, func(event entity.AgentEvent) {
		events = append(events, event)
	})

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Hello ", events[0].Content.Parts[0].Text)
	assert.Equal(t, "traveler.", events[1].Content.Parts[0].Text)
	assert.Equal(t, []string{"Visit the market"}, events[2].Suggestions)
}

func TestStreamQueryHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"engine crashed"}`)
	}))
	defer server.Close()

	calls := 0
	err := newTestClient(server).StreamQuery(context.Background(), entity.AgentQuery{Message: "hi"},
		func(event entity.AgentEvent) { calls++ })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Zero(t, calls)
}

func TestStreamQueryMidStreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content":{"parts":[{"text":"Day 1 looks"}]}}`+"\n")
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer server.Close()

	var events []entity.AgentEvent
	err := newTestClient(server).StreamQuery(context.Background(), entity.AgentQuery{Message: "plan"},
		func(event entity.AgentEvent) {
			events = append(events, event)
		})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted after 1 events")
	require.Len(t, events, 1)
	assert.Equal(t, "Day 1 looks", events[0].Content.Parts[0].Text)
}
