package entity

import (
	"encoding/json"
	"fmt"
)

// DefaultTripName is used when the agent or caller omits a trip name.
const DefaultTripName = "Untitled Trip"

// Day event kinds accepted by the store. Anything else is rejected at
// the validation boundary.
const (
	EventTypeFlight     = "flight"
	EventTypeHotel      = "hotel"
	EventTypeAttraction = "visit"
)

// Itinerary is the structured trip plan produced by the agent and
// persisted with each saved trip. Dates are YYYY-MM-DD strings and are
// treated as opaque; no calendar math is applied anywhere.
type Itinerary struct {
	TripName    string         `json:"trip_name" bson:"trip_name"`
	StartDate   string         `json:"start_date" bson:"start_date"`
	EndDate     string         `json:"end_date" bson:"end_date"`
	Origin      string         `json:"origin" bson:"origin"`
	Destination string         `json:"destination" bson:"destination"`
	Days        []ItineraryDay `json:"days" bson:"days"`
}

// ItineraryDay groups the events of one trip day.
type ItineraryDay struct {
	DayNumber int              `json:"day_number" bson:"day_number"`
	Date      string           `json:"date" bson:"date"`
	Events    []ItineraryEvent `json:"events" bson:"events"`
}

// ItineraryEvent is one scheduled item in a day. The shape is a closed
// union on EventType: flight, hotel or visit. Kind-specific fields are
// optional on the wire and checked by Validate. Times are local HH:MM
// strings.
type ItineraryEvent struct {
	EventType       string `json:"event_type" bson:"event_type"`
	Description     string `json:"description" bson:"description"`
	BookingRequired *bool  `json:"booking_required,omitempty" bson:"booking_required,omitempty"`
	Price           string `json:"price,omitempty" bson:"price,omitempty"`
	BookingID       string `json:"booking_id,omitempty" bson:"booking_id,omitempty"`

	// Flight fields
	DepartureAirport string `json:"departure_airport,omitempty" bson:"departure_airport,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty" bson:"arrival_airport,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty" bson:"flight_number,omitempty"`
	BoardingTime     string `json:"boarding_time,omitempty" bson:"boarding_time,omitempty"`
	SeatNumber       string `json:"seat_number,omitempty" bson:"seat_number,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty" bson:"departure_time,omitempty"`
	ArrivalTime      string `json:"arrival_time,omitempty" bson:"arrival_time,omitempty"`

	// Hotel fields (Address is shared with visits)
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	CheckInTime   string `json:"check_in_time,omitempty" bson:"check_in_time,omitempty"`
	CheckOutTime  string `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	RoomSelection string `json:"room_selection,omitempty" bson:"room_selection,omitempty"`

	// Visit fields
	StartTime string `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty" bson:"end_time,omitempty"`
}

type requiredField struct {
	name  string
	value string
}

func firstMissing(fields []requiredField) string {
	for _, f := range fields {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

// Validate checks the event against its kind's required fields.
func (e *ItineraryEvent) Validate() error {
	var fields []requiredField

	switch e.EventType {
	case EventTypeFlight:
		fields = []requiredField{
			{"description", e.Description},
			{"departure_airport", e.DepartureAirport},
			{"arrival_airport", e.ArrivalAirport},
			{"flight_number", e.FlightNumber},
			{"boarding_time", e.BoardingTime},
			{"seat_number", e.SeatNumber},
			{"departure_time", e.DepartureTime},
			{"arrival_time", e.ArrivalTime},
		}
	case EventTypeHotel:
		fields = []requiredField{
			{"description", e.Description},
			{"address", e.Address},
			{"check_in_time", e.CheckInTime},
			{"check_out_time", e.CheckOutTime},
			{"room_selection", e.RoomSelection},
		}
	case EventTypeAttraction:
		fields = []requiredField{
			{"description", e.Description},
			{"address", e.Address},
			{"start_time", e.StartTime},
			{"end_time", e.EndTime},
		}
	default:
		return fmt.Errorf("unknown event_type %q", e.EventType)
	}

	if name := firstMissing(fields); name != "" {
		return fmt.Errorf("%s is required for %s events", name, e.EventType)
	}
	return nil
}

// Validate checks the itinerary shape: required trip fields, day
// numbers positive and unique, and every event valid for its kind.
// Date ordering is not checked; start_date after end_date passes.
func (it *Itinerary) Validate() error {
	if name := firstMissing([]requiredField{
		{"start_date", it.StartDate},
		{"end_date", it.EndDate},
		{"origin", it.Origin},
		{"destination", it.Destination},
	}); name != "" {
		return fmt.Errorf("%s is required", name)
	}

	seen := make(map[int]bool, len(it.Days))
	for _, day := range it.Days {
		if day.DayNumber < 1 {
			return fmt.Errorf("day_number must be positive, got %d", day.DayNumber)
		}
		if seen[day.DayNumber] {
			return fmt.Errorf("duplicate day_number %d", day.DayNumber)
		}
		seen[day.DayNumber] = true

		if day.Date == "" {
			return fmt.Errorf("date is required for day %d", day.DayNumber)
		}
		for i := range day.Events {
			if err := day.Events[i].Validate(); err != nil {
				return fmt.Errorf("day %d event %d: %w", day.DayNumber, i, err)
			}
		}
	}
	return nil
}

// ApplyDefaults fills the wire-format defaults callers may omit: the
// fallback trip name and each event's kind-dependent booking flag
// (flights and hotels default to required, visits to not).
func (it *Itinerary) ApplyDefaults() {
	if it.TripName == "" {
		it.TripName = DefaultTripName
	}
	for di := range it.Days {
		for ei := range it.Days[di].Events {
			event := &it.Days[di].Events[ei]
			if event.BookingRequired == nil {
				required := event.EventType == EventTypeFlight || event.EventType == EventTypeHotel
				event.BookingRequired = &required
			}
		}
	}
}

// ItineraryFromMap decodes a loosely typed itinerary payload into the
// typed model, applying defaults and validating the result.
func ItineraryFromMap(raw map[string]interface{}) (*Itinerary, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal itinerary payload: %w", err)
	}

	var it Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary payload: %w", err)
	}

	it.ApplyDefaults()
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return &it, nil
}
