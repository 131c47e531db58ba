// internal/interface/repository/trip_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"concierge-service/internal/domain/entity"
	"concierge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tripsCollection holds one document per saved trip.
const tripsCollection = "user_trips_v2"

// MongoTripRepository implements the TripRepository interface
type MongoTripRepository struct {
	collection *mongo.Collection
}

// NewMongoTripRepository creates a new MongoDB trip repository
func NewMongoTripRepository(db *mongo.Database) repository.TripRepository {
	collection := db.Collection(tripsCollection)

	ctx := context.Background()

	// Unique index on trip_id, the externally visible identifier
	tripIDIndex := mongo.IndexModel{
		Keys:    bson.M{"trip_id": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index backing the owner+status listing sorted by start date
	listIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "start_date", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		tripIDIndex,
		listIndex,
	})

	return &MongoTripRepository{
		collection: collection,
	}
}

// Save inserts a new trip document
func (r *MongoTripRepository) Save(ctx context.Context, trip *entity.TripRecord) error {
	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// ListByUserAndStatus returns the user's trips ordered by start date.
// An empty status skips the status filter.
func (r *MongoTripRepository) ListByUserAndStatus(ctx context.Context, userID, status string) ([]*entity.TripRecord, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{{Key: "start_date", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*entity.TripRecord
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return trips, nil
}

// FindByID finds a trip by its id; a missing trip is (nil, nil)
func (r *MongoTripRepository) FindByID(ctx context.Context, tripID string) (*entity.TripRecord, error) {
	var trip entity.TripRecord
	err := r.collection.FindOne(ctx, bson.M{"trip_id": tripID}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &trip, nil
}
