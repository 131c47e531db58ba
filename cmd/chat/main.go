package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/infrastructure/config"
	"concierge-service/internal/infrastructure/oauth"
	"concierge-service/internal/interface/agentengine"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"
)

// Interactive terminal client for the deployed agent engine. Handy for
// poking at an engine without the web frontend in front of it.
func main() {
	log := logger.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if !cfg.AgentConfigured() {
		log.Fatal("Agent engine not configured; set GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION and REASONING_ENGINE_RESOURCE_NAME")
	}

	ctx := context.Background()

	tokenSource, err := oauth.NewGoogleAuth(log).TokenSource(ctx)
	if err != nil {
		log.Fatal("Failed to resolve Google credentials", "error", err)
	}
	engine := agentengine.NewVertexEngineClient(ctx, cfg.GoogleCloudLocation, cfg.ReasoningEngine, tokenSource, cfg.AgentQueryTimeout, log)

	userID := "cli_user_" + uuid.NewString()
	sessionID, err := engine.CreateSession(ctx, userID)
	if err != nil {
		sessionID = uuid.NewString()
		fmt.Printf("create_session failed (%v), using generated session id %s\n", err, sessionID)
	}
	fmt.Printf("Chatting as %s on session %s. Type 'exit' or 'quit' to leave.\n", userID, sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		extractor := usecase.NewTurnExtractor()
		query := entity.AgentQuery{
			Message:   message,
			UserID:    userID,
			SessionID: sessionID,
		}

		err := engine.StreamQuery(ctx, query, func(event entity.AgentEvent) {
			if event.Content != nil {
				for _, part := range event.Content.Parts {
					if part.FunctionCall != nil && part.FunctionCall.Name != "" {
						fmt.Printf("[calls tool: %s]\n", part.FunctionCall.Name)
					}
				}
			}
			extractor.Consume(event)
		})
		if err != nil {
			extractor.SetError(err)
		}

		turn := extractor.Result()
		fmt.Printf("Agent: %s\n", turn.DisplayText)
		if len(turn.Itinerary) > 0 {
			fmt.Println("[captured a structured itinerary]")
		}
		if len(turn.Suggestions) > 0 {
			fmt.Printf("Suggestions: %s\n", strings.Join(turn.Suggestions, " | "))
		}
		if turn.ErrorMessage != "" {
			fmt.Printf("Error: %s\n", turn.ErrorMessage)
		}
	}

	fmt.Println("Bye.")
}
