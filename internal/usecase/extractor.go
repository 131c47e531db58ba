package usecase

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"concierge-service/internal/domain/entity"
)

// itineraryAgentName is the sub-agent whose function responses carry
// the structured itinerary.
const itineraryAgentName = "itinerary_agent"

// TurnResult is the normalized outcome of draining one agent turn.
type TurnResult struct {
	DisplayText      string
	Itinerary        map[string]interface{}
	Suggestions      []string
	ActiveSubAgents  []string
	RequiresFollowUp bool
	ErrorMessage     string
	EventCount       int
}

// TurnExtractor folds one turn's event stream into a TurnResult. Use a
// fresh extractor per turn; Consume is not safe for concurrent use.
type TurnExtractor struct {
	textParts        []string
	itinerary        map[string]interface{}
	subAgents        []string
	suggestions      []string
	followUp         bool
	followUpExplicit bool
	errorMessage     string
	eventCount       int
}

// NewTurnExtractor creates an extractor for a single turn
func NewTurnExtractor() *TurnExtractor {
	return &TurnExtractor{}
}

// Consume folds one event into the running result. Events that match
// none of the known shapes contribute nothing and are otherwise
// ignored; they never fail the turn.
func (x *TurnExtractor) Consume(event entity.AgentEvent) {
	x.eventCount++

	if event.Content != nil {
		for _, part := range event.Content.Parts {
			if part.Text != "" {
				x.textParts = append(x.textParts, part.Text)
			}
		}
	}

	// A later non-empty itinerary replaces an earlier one; empty or
	// absent candidates never do.
	if itinerary := eventItinerary(event); len(itinerary) > 0 {
		x.itinerary = itinerary
	}

	if event.Author != "" {
		x.subAgents = append(x.subAgents, event.Author)
	} else if event.SourceAgent != "" {
		x.subAgents = append(x.subAgents, event.SourceAgent)
	}

	x.suggestions = append(x.suggestions, event.Suggestions...)

	if event.RequiresFollowUp != nil {
		x.followUpExplicit = true
		if *event.RequiresFollowUp {
			x.followUp = true
		}
	}

	// First error wins; later ones never replace it
	if x.errorMessage == "" {
		if event.Error != "" {
			x.errorMessage = event.Error
		} else if event.ErrorMessage != "" {
			x.errorMessage = event.ErrorMessage
		}
	}
}

// SetError records a transport failure unless an event already
// reported an error. Collected partial output stays intact.
func (x *TurnExtractor) SetError(err error) {
	if err == nil || x.errorMessage != "" {
		return
	}
	x.errorMessage = err.Error()
}

// Result finalizes the turn.
func (x *TurnExtractor) Result() TurnResult {
	displayText := strings.Join(x.textParts, "")

	followUp := x.followUp
	if !x.followUpExplicit && strings.HasSuffix(strings.TrimSpace(displayText), "?") {
		followUp = true
	}

	return TurnResult{
		DisplayText:      displayText,
		Itinerary:        x.itinerary,
		Suggestions:      x.suggestions,
		ActiveSubAgents:  lo.Uniq(x.subAgents),
		RequiresFollowUp: followUp,
		ErrorMessage:     x.errorMessage,
		EventCount:       x.eventCount,
	}
}

// eventItinerary returns the event's itinerary candidate: the first
// non-empty match of, in order, an itinerary_agent function response,
// a state_delta itinerary, a top-level itinerary, then the wrapped
// fallback keys.
func eventItinerary(event entity.AgentEvent) map[string]interface{} {
	if event.Content != nil {
		for _, part := range event.Content.Parts {
			response := part.FunctionResponse
			if response == nil || response.Name != itineraryAgentName {
				continue
			}
			if itinerary := asObject(response.Response); len(itinerary) > 0 {
				return itinerary
			}
		}
	}

	if event.Actions != nil {
		if itinerary := asObject(event.Actions.StateDelta["itinerary"]); len(itinerary) > 0 {
			return itinerary
		}
	}

	if itinerary := asObject(event.Itinerary); len(itinerary) > 0 {
		return itinerary
	}

	for _, wrapper := range []json.RawMessage{event.ToolOutput, event.ToolResult, event.StructuredOutput, event.Output} {
		if itinerary := asObject(wrappedItinerary(wrapper)); len(itinerary) > 0 {
			return itinerary
		}
	}

	return nil
}

// asObject decodes raw JSON into a map, returning nil for anything
// that is not a JSON object.
func asObject(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var object map[string]interface{}
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil
	}
	return object
}

// wrappedItinerary pulls the "itinerary" member out of a wrapper
// object like tool_output or structured_output.
func wrappedItinerary(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	return wrapper["itinerary"]
}
