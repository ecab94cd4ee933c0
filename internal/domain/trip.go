// Package domain contains the core data types for the planner application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey to a destination.
// A trip is the top-level aggregate; participants, activities, and links
// belong to a trip and are removed with it.
//
// Confirmed starts false and flips to true exactly once, when the owner
// visits the confirmation link from their email. The transition is never
// reverted.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Confirmed   bool      `json:"confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}
