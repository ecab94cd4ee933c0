package domain

import "github.com/google/uuid"

// Participant is a person attached to a trip, either its owner or an invitee.
// The owner is created already confirmed; invitees start unconfirmed and flip
// to confirmed when they visit their emailed confirmation link.
// Name may be empty — invitees fill it in later, outside this workflow.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsOwner   bool      `json:"is_owner"`
	Confirmed bool      `json:"confirmed"`
}
