package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ericsromero/planner/internal/domain"
)

// createTripRequest is the body of POST /trips.
// Email fields use the oapi-codegen runtime Email type, whose UnmarshalJSON
// rejects malformed addresses before the service layer sees them.
type createTripRequest struct {
	Destination    string                `json:"destination"`
	StartsAt       time.Time             `json:"starts_at"`
	EndsAt         time.Time             `json:"ends_at"`
	OwnerName      string                `json:"owner_name"`
	OwnerEmail     openapi_types.Email   `json:"owner_email"`
	EmailsToInvite []openapi_types.Email `json:"emails_to_invite"`
}

// updateTripRequest is the body of PUT /trips/{tripID}.
type updateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// createTrip handles POST /trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	invites := make([]string, len(req.EmailsToInvite))
	for i, e := range req.EmailsToInvite {
		invites[i] = string(e)
	}

	trip := domain.Trip{
		Destination: req.Destination,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	created, err := s.trips.Create(r.Context(), trip, req.OwnerName, string(req.OwnerEmail), invites)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{"tripId": created.ID})
}

// getTrip handles GET /trips/{tripID}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	trip, err := s.trips.GetByID(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"trip": trip})
}

// updateTrip handles PUT /trips/{tripID}.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	trip := domain.Trip{
		ID:          tripID,
		Destination: req.Destination,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"tripId": updated.ID})
}

// confirmTrip handles GET /trips/{tripID}/confirm, the link emailed to the
// trip owner. First visit flips the trip to confirmed and fans out invitee
// emails; repeat visits just redirect. Both outcomes land on the same
// frontend trip page.
func (s *Server) confirmTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	trip, err := s.trips.Confirm(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	http.Redirect(w, r, s.tripPage(trip.ID), http.StatusFound)
}
