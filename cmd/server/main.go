package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge-service/internal/infrastructure/config"
	"concierge-service/internal/infrastructure/oauth"
	"concierge-service/internal/infrastructure/persistence"
	"concierge-service/internal/interface/agentengine"
	"concierge-service/internal/interface/httpapi"
	mongoRepo "concierge-service/internal/interface/repository"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"
	"concierge-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Concierge Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics registry backing /metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry, "concierge")

	// Trip store side. A failure here disables the trip endpoints but
	// the process still serves, so /health can report what is down.
	var tripService *usecase.TripService
	var mongoClient *mongo.Client

	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("Failed to connect to MongoDB, trip endpoints disabled", "error", err)
	} else {
		tripRepo := mongoRepo.NewMongoTripRepository(db)
		tripService = usecase.NewTripService(tripRepo, m, log)
	}

	// Agent engine side, same degraded treatment
	var chatService *usecase.ChatService

	if !cfg.AgentConfigured() {
		log.Error("Agent engine not configured, chat endpoint disabled",
			"project", cfg.GoogleCloudProject, "location", cfg.GoogleCloudLocation)
	} else {
		tokenSource, err := oauth.NewGoogleAuth(log).TokenSource(ctx)
		if err != nil {
			log.Error("Failed to resolve Google credentials, chat endpoint disabled", "error", err)
		} else {
			engine := agentengine.NewVertexEngineClient(ctx, cfg.GoogleCloudLocation, cfg.ReasoningEngine, tokenSource, cfg.AgentQueryTimeout, log)
			sessions := mongoRepo.NewCacheSessionStore()
			chatService = usecase.NewChatService(engine, sessions, m, log)
		}
	}

	apiServer := httpapi.NewServer(chatService, tripService, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      apiServer.Routes(registry),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "version", cfg.AppVersion)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Concierge Service stopped")
}
