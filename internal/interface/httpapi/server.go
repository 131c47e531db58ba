// internal/interface/httpapi/server.go
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/usecase"
	"concierge-service/pkg/logger"
)

// Server maps the JSON API onto the chat and trip services. Either
// service may be nil when its backing dependency failed to come up;
// the affected endpoints then answer 503 and /health reports degraded.
type Server struct {
	chat   *usecase.ChatService
	trips  *usecase.TripService
	logger logger.Logger
}

// NewServer creates a new API server
func NewServer(chat *usecase.ChatService, trips *usecase.TripService, logger logger.Logger) *Server {
	return &Server{
		chat:   chat,
		trips:  trips,
		logger: logger,
	}
}

// Routes returns the handler with every route mounted. The gatherer
// feeds /metrics.
func (s *Server) Routes(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /trips", s.handleSaveTrip)
	mux.HandleFunc("GET /trips", s.handleListTrips)
	mux.HandleFunc("GET /trips/{trip_id}", s.handleGetTrip)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	SessionID           string            `json:"session_id"`
	DisplayText         string            `json:"display_text"`
	Suggestions         []string          `json:"suggestions,omitempty"`
	StructuredItinerary *entity.Itinerary `json:"structured_itinerary,omitempty"`
	ActiveSubAgents     []string          `json:"active_sub_agents,omitempty"`
	RequiresFollowUp    bool              `json:"requires_follow_up"`
	ErrorMessage        string            `json:"error_message,omitempty"`
}

type saveTripRequest struct {
	ClientSessionID string           `json:"client_session_id"`
	ItineraryData   entity.Itinerary `json:"itinerary_data"`
}

type saveTripResponse struct {
	TripID  string `json:"trip_id"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status               string `json:"status"`
	AgentInitialized     bool   `json:"agent_initialized"`
	TripStoreInitialized bool   `json:"trip_store_initialized"`
	Message              string `json:"message,omitempty"`
}

// errorResponse matches the {"detail": ...} error shape the web client
// already understands.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Agent service not available.")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query is required.")
		return
	}

	result := s.chat.Chat(r.Context(), usecase.ChatRequest{
		Query:     req.Query,
		SessionID: req.SessionID,
	})

	s.writeJSON(w, http.StatusOK, chatResponse{
		SessionID:           result.SessionID,
		DisplayText:         result.DisplayText,
		Suggestions:         result.Suggestions,
		StructuredItinerary: result.Itinerary,
		ActiveSubAgents:     result.ActiveSubAgents,
		RequiresFollowUp:    result.RequiresFollowUp,
		ErrorMessage:        result.ErrorMessage,
	})
}

func (s *Server) handleSaveTrip(w http.ResponseWriter, r *http.Request) {
	if s.trips == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database service not available.")
		return
	}

	var req saveTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.ClientSessionID == "" {
		s.writeError(w, http.StatusBadRequest, "client_session_id is required.")
		return
	}

	tripID, err := s.trips.SaveTrip(r.Context(), req.ClientSessionID, req.ItineraryData)
	if errors.Is(err, usecase.ErrInvalidItinerary) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Failed to save trip", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to save trip.")
		return
	}

	s.writeJSON(w, http.StatusCreated, saveTripResponse{
		TripID:  tripID,
		Message: "Trip saved successfully.",
	})
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	if s.trips == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database service not available.")
		return
	}

	clientSessionID := r.URL.Query().Get("client_session_id")
	if clientSessionID == "" {
		s.writeError(w, http.StatusBadRequest, "client_session_id is required.")
		return
	}

	// An absent status defaults to upcoming; an explicitly empty
	// status= lists every trip.
	status := entity.TripStatusUpcoming
	if r.URL.Query().Has("status") {
		status = r.URL.Query().Get("status")
	}

	trips, err := s.trips.ListTrips(r.Context(), clientSessionID, status)
	if err != nil {
		s.logger.Error("Failed to list trips", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve trips.")
		return
	}
	if trips == nil {
		trips = []entity.TripSummary{}
	}

	s.writeJSON(w, http.StatusOK, trips)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	if s.trips == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Database service not available.")
		return
	}

	tripID := r.PathValue("trip_id")

	itinerary, err := s.trips.GetTrip(r.Context(), tripID)
	if err != nil {
		s.logger.Error("Failed to get trip", "tripId", tripID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve trip.")
		return
	}
	if itinerary == nil {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Trip with ID %s not found.", tripID))
		return
	}

	s.writeJSON(w, http.StatusOK, itinerary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := healthResponse{
		Status:               "ok",
		AgentInitialized:     s.chat != nil,
		TripStoreInitialized: s.trips != nil,
	}

	status := http.StatusOK
	if !health.AgentInitialized || !health.TripStoreInitialized {
		health.Status = "degraded"
		health.Message = "One or more backend services are not initialized."
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, health)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
