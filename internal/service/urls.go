package service

import (
	"fmt"

	"github.com/google/uuid"
)

// BaseURLs builds the absolute URLs embedded in confirmation emails and used
// as redirect targets. API is this server's public base; Web is the frontend.
// Both are expected without a trailing slash (config.Load normalizes them).
type BaseURLs struct {
	API string
	Web string
}

// TripConfirmation returns the API link the owner clicks to confirm a trip.
func (u BaseURLs) TripConfirmation(tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s/confirm", u.API, tripID)
}

// ParticipantConfirmation returns the API link an invitee clicks to confirm
// their presence.
func (u BaseURLs) ParticipantConfirmation(participantID uuid.UUID) string {
	return fmt.Sprintf("%s/participants/%s/confirm", u.API, participantID)
}

// TripPage returns the human-facing frontend page for a trip. Confirmation
// endpoints redirect here on every visit, first or repeated.
func (u BaseURLs) TripPage(tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s", u.Web, tripID)
}
