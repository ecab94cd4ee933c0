package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single planned event during a trip.
// OccursAt must fall within the trip's [StartsAt, EndsAt] window, inclusive
// on both ends; the service layer enforces this on create and update.
type Activity struct {
	ID       uuid.UUID `json:"id"`
	TripID   uuid.UUID `json:"trip_id"`
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// DayActivities groups a trip's activities for one calendar day.
// The activity listing returns one entry per day of the trip, including days
// with no activities, so the client can render an empty slot for them.
type DayActivities struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}
