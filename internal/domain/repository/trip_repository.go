package repository

import (
	"context"

	"concierge-service/internal/domain/entity"
)

// TripRepository defines the interface for trip persistence.
// FindByID reports a missing trip as (nil, nil), not as an error.
type TripRepository interface {
	Save(ctx context.Context, trip *entity.TripRecord) error
	ListByUserAndStatus(ctx context.Context, userID, status string) ([]*entity.TripRecord, error)
	FindByID(ctx context.Context, tripID string) (*entity.TripRecord, error)
}
