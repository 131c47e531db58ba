package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"
	"concierge-service/pkg/logger"
	"concierge-service/pkg/metrics"
)

// tripUserPrefix derives the store-side identity from the client
// session id.
const tripUserPrefix = "db_user_"

// ErrInvalidItinerary marks shape validation failures so the HTTP
// layer can answer 400 instead of 500.
var ErrInvalidItinerary = errors.New("invalid itinerary")

// TripService persists and retrieves trips for web clients.
type TripService struct {
	trips   repository.TripRepository
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewTripService creates a new trip service
func NewTripService(trips repository.TripRepository, metrics *metrics.Metrics, logger logger.Logger) *TripService {
	return &TripService{
		trips:   trips,
		metrics: metrics,
		logger:  logger,
	}
}

// SaveTrip validates and stores one itinerary, returning the new trip
// id. Dates are stored as given; only the shape is checked, so a
// start_date after the end_date is accepted.
func (s *TripService) SaveTrip(ctx context.Context, clientSessionID string, itinerary entity.Itinerary) (string, error) {
	itinerary.ApplyDefaults()
	if err := itinerary.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidItinerary, err)
	}

	record := &entity.TripRecord{
		TripID:           uuid.NewString(),
		UserID:           tripUserPrefix + clientSessionID,
		TripName:         itinerary.TripName,
		StartDate:        itinerary.StartDate,
		EndDate:          itinerary.EndDate,
		ItineraryDetails: itinerary,
		CreatedAt:        time.Now().UTC(),
		Status:           entity.TripStatusUpcoming,
	}

	if err := s.trips.Save(ctx, record); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("save_trip").Inc()
		return "", fmt.Errorf("failed to save trip: %w", err)
	}

	s.metrics.TripsSaved.Inc()
	s.logger.Info("Trip saved", "tripId", record.TripID, "userId", record.UserID, "tripName", record.TripName)
	return record.TripID, nil
}

// ListTrips returns the caller's trip summaries ordered by start date.
// An empty status lists trips regardless of status.
func (s *TripService) ListTrips(ctx context.Context, clientSessionID, status string) ([]entity.TripSummary, error) {
	userID := tripUserPrefix + clientSessionID

	records, err := s.trips.ListByUserAndStatus(ctx, userID, status)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("list_trips").Inc()
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	return lo.Map(records, func(record *entity.TripRecord, _ int) entity.TripSummary {
		return record.Summary()
	}), nil
}

// GetTrip returns the stored itinerary for the trip. A missing trip is
// (nil, nil); so is a stored document whose itinerary no longer passes
// validation, matching how absent and unreadable trips look the same
// to clients.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*entity.Itinerary, error) {
	record, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("get_trip").Inc()
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	if err := record.ItineraryDetails.Validate(); err != nil {
		s.logger.Warn("Stored itinerary failed validation", "tripId", tripID, "error", err)
		return nil, nil
	}
	return &record.ItineraryDetails, nil
}
