package entity

import (
	"encoding/json"
)

// AgentQuery is one user message sent to the remote agent engine.
type AgentQuery struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
}

// AgentEvent is one record streamed back from the agent engine during
// a turn. Every field is optional: different sub-agents emit different
// shapes and unknown fields are ignored. Fields whose value types vary
// between agents are kept as raw JSON and interpreted by the consumer.
type AgentEvent struct {
	Author           string          `json:"author,omitempty"`
	SourceAgent      string          `json:"source_agent,omitempty"`
	Content          *EventContent   `json:"content,omitempty"`
	Actions          *EventActions   `json:"actions,omitempty"`
	Itinerary        json.RawMessage `json:"itinerary,omitempty"`
	ToolOutput       json.RawMessage `json:"tool_output,omitempty"`
	ToolResult       json.RawMessage `json:"tool_result,omitempty"`
	StructuredOutput json.RawMessage `json:"structured_output,omitempty"`
	Output           json.RawMessage `json:"output,omitempty"`
	Suggestions      []string        `json:"suggestions,omitempty"`
	RequiresFollowUp *bool           `json:"requires_follow_up,omitempty"`
	Error            string          `json:"error,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
}

// EventContent carries the model output parts of one event.
type EventContent struct {
	Role  string      `json:"role,omitempty"`
	Parts []EventPart `json:"parts,omitempty"`
}

// EventPart is one fragment of event content: plain text, a tool call
// or a tool response.
type EventPart struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`
}

// FunctionCall names a tool invocation requested by the agent.
type FunctionCall struct {
	Name string                 `json:"name,omitempty"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// FunctionResponse carries a tool result back through the stream.
type FunctionResponse struct {
	Name     string          `json:"name,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// EventActions carries session state mutations attached to an event.
type EventActions struct {
	StateDelta map[string]json.RawMessage `json:"state_delta,omitempty"`
}
