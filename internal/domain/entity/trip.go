package entity

import (
	"time"
)

// TripStatusUpcoming is the status every newly saved trip starts in.
const TripStatusUpcoming = "upcoming"

// TripRecord is the stored trip document.
type TripRecord struct {
	TripID           string    `json:"trip_id" bson:"trip_id"`
	UserID           string    `json:"user_id" bson:"user_id"`
	TripName         string    `json:"trip_name" bson:"trip_name"`
	StartDate        string    `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate          string    `json:"end_date,omitempty" bson:"end_date,omitempty"`
	ItineraryDetails Itinerary `json:"itinerary_details" bson:"itinerary_details"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	Status           string    `json:"status" bson:"status"`
}

// TripSummary is the listing projection of a stored trip.
type TripSummary struct {
	TripID    string `json:"trip_id"`
	TripName  string `json:"trip_name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Summary projects the record onto its listing shape.
func (t *TripRecord) Summary() TripSummary {
	return TripSummary{
		TripID:    t.TripID,
		TripName:  t.TripName,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    t.Status,
	}
}
