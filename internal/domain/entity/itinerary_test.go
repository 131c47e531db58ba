package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge-service/internal/domain/entity"
)

func fullItinerary() entity.Itinerary {
	return entity.Itinerary{
		TripName:    "Seattle Getaway",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-03",
		Origin:      "San Francisco",
		Destination: "Seattle",
		Days: []entity.ItineraryDay{
			{
				DayNumber: 1,
				Date:      "2026-09-01",
				Events: []entity.ItineraryEvent{
					{
						EventType:        entity.EventTypeFlight,
						Description:      "Morning flight to Seattle",
						DepartureAirport: "SFO",
						ArrivalAirport:   "SEA",
						FlightNumber:     "UA123",
						BoardingTime:     "07:30",
						SeatNumber:       "12A",
						DepartureTime:    "08:15",
						ArrivalTime:      "10:20",
					},
					{
						EventType:     entity.EventTypeHotel,
						Description:   "Downtown hotel",
						Address:       "400 Pine St",
						CheckInTime:   "15:00",
						CheckOutTime:  "11:00",
						RoomSelection: "King, city view",
					},
				},
			},
			{
				DayNumber: 2,
				Date:      "2026-09-02",
				Events: []entity.ItineraryEvent{
					{
						EventType:   entity.EventTypeAttraction,
						Description: "Pike Place Market",
						Address:     "85 Pike St",
						StartTime:   "10:00",
						EndTime:     "12:00",
					},
				},
			},
		},
	}
}

func TestItineraryValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(it *entity.Itinerary)
		errContains string
	}{
		{
			name:   "complete itinerary",
			mutate: func(it *entity.Itinerary) {},
		},
		{
			name:   "no days is valid",
			mutate: func(it *entity.Itinerary) { it.Days = nil },
		},
		{
			name:        "missing start date",
			mutate:      func(it *entity.Itinerary) { it.StartDate = "" },
			errContains: "start_date is required",
		},
		{
			name:        "missing end date",
			mutate:      func(it *entity.Itinerary) { it.EndDate = "" },
			errContains: "end_date is required",
		},
		{
			name:        "missing origin",
			mutate:      func(it *entity.Itinerary) { it.Origin = "" },
			errContains: "origin is required",
		},
		{
			name:        "missing destination",
			mutate:      func(it *entity.Itinerary) { it.Destination = "" },
			errContains: "destination is required",
		},
		{
			name:        "zero day number",
			mutate:      func(it *entity.Itinerary) { it.Days[0].DayNumber = 0 },
			errContains: "day_number must be positive",
		},
		{
			name:        "duplicate day number",
			mutate:      func(it *entity.Itinerary) { it.Days[1].DayNumber = 1 },
			errContains: "duplicate day_number 1",
		},
		{
			name:        "missing day date",
			mutate:      func(it *entity.Itinerary) { it.Days[1].Date = "" },
			errContains: "date is required for day 2",
		},
		{
			name: "flight missing seat",
			mutate: func(it *entity.Itinerary) {
				it.Days[0].Events[0].SeatNumber = ""
			},
			errContains: "day 1 event 0: seat_number is required for flight events",
		},
		{
			name: "hotel missing room selection",
			mutate: func(it *entity.Itinerary) {
				it.Days[0].Events[1].RoomSelection = ""
			},
			errContains: "day 1 event 1: room_selection is required for hotel events",
		},
		{
			name: "visit missing address",
			mutate: func(it *entity.Itinerary) {
				it.Days[1].Events[0].Address = ""
			},
			errContains: "day 2 event 0: address is required for visit events",
		},
		{
			name: "unknown event type",
			mutate: func(it *entity.Itinerary) {
				it.Days[0].Events[0].EventType = "train"
			},
			errContains: `unknown event_type "train"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itinerary := fullItinerary()
			tt.mutate(&itinerary)

			err := itinerary.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestItineraryValidateAcceptsReversedDates(t *testing.T) {
	itinerary := fullItinerary()
	itinerary.StartDate = "2026-09-10"
	itinerary.EndDate = "2026-09-01"

	assert.NoError(t, itinerary.Validate())
}

func TestItineraryApplyDefaults(t *testing.T) {
	itinerary := fullItinerary()
	itinerary.TripName = ""

	explicitlyOptional := false
	itinerary.Days[0].Events[1].BookingRequired = &explicitlyOptional

	itinerary.ApplyDefaults()

	assert.Equal(t, entity.DefaultTripName, itinerary.TripName)

	flight := itinerary.Days[0].Events[0]
	require.NotNil(t, flight.BookingRequired)
	assert.True(t, *flight.BookingRequired)

	hotel := itinerary.Days[0].Events[1]
	require.NotNil(t, hotel.BookingRequired)
	assert.False(t, *hotel.BookingRequired)

	visit := itinerary.Days[1].Events[0]
	require.NotNil(t, visit.BookingRequired)
	assert.False(t, *visit.BookingRequired)
}

func TestItineraryApplyDefaultsKeepsName(t *testing.T) {
	itinerary := fullItinerary()
	itinerary.ApplyDefaults()
	assert.Equal(t, "Seattle Getaway", itinerary.TripName)
}

func TestItineraryFromMap(t *testing.T) {
	raw := map[string]interface{}{
		"start_date":  "2026-09-01",
		"end_date":    "2026-09-03",
		"origin":      "San Francisco",
		"destination": "Seattle",
		"days": []interface{}{
			map[string]interface{}{
				"day_number": 1,
				"date":       "2026-09-01",
				"events": []interface{}{
					map[string]interface{}{
						"event_type":  "visit",
						"description": "Pike Place Market",
						"address":     "85 Pike St",
						"start_time":  "10:00",
						"end_time":    "12:00",
					},
				},
			},
		},
	}

	itinerary, err := entity.ItineraryFromMap(raw)
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultTripName, itinerary.TripName)
	require.Len(t, itinerary.Days, 1)

	visit := itinerary.Days[0].Events[0]
	require.NotNil(t, visit.BookingRequired)
	assert.False(t, *visit.BookingRequired)
}

func TestItineraryFromMapRejectsWrongShape(t *testing.T) {
	_, err := entity.ItineraryFromMap(map[string]interface{}{
		"days": "not a list",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode itinerary payload")
}

func TestItineraryFromMapRejectsInvalid(t *testing.T) {
	_, err := entity.ItineraryFromMap(map[string]interface{}{
		"trip_name": "No Dates",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date is required")
}

func TestTripRecordSummary(t *testing.T) {
	record := entity.TripRecord{
		TripID:    "t-1",
		UserID:    "db_user_sess-1",
		TripName:  "Kyoto Week",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-07",
		Status:    entity.TripStatusUpcoming,
	}

	summary := record.Summary()
	assert.Equal(t, "t-1", summary.TripID)
	assert.Equal(t, "Kyoto Week", summary.TripName)
	assert.Equal(t, "2026-10-01", summary.StartDate)
	assert.Equal(t, "2026-10-07", summary.EndDate)
	assert.Equal(t, entity.TripStatusUpcoming, summary.Status)
}
