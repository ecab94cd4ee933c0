package domain

import "github.com/google/uuid"

// Link is a useful URL attached to a trip (booking pages, house rules, maps).
type Link struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
}
