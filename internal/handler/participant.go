package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// createInviteRequest is the body of POST /trips/{tripID}/invites.
type createInviteRequest struct {
	Email openapi_types.Email `json:"email"`
}

// createInvite handles POST /trips/{tripID}/invites.
func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	participant, err := s.participants.Invite(r.Context(), tripID, string(req.Email))
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{"participantId": participant.ID})
}

// confirmParticipant handles GET /participants/{participantID}/confirm, the
// link emailed to each invitee. The flip happens at most once; every visit
// redirects to the same frontend trip page.
func (s *Server) confirmParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, err := pathUUID(r, "participantID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	participant, err := s.participants.Confirm(r.Context(), participantID)
	if err != nil {
		s.respondError(w, r, err, "participant not found")
		return
	}

	http.Redirect(w, r, s.tripPage(participant.TripID), http.StatusFound)
}

// getParticipant handles GET /participant/{participantID}.
func (s *Server) getParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, err := pathUUID(r, "participantID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	participant, err := s.participants.GetByID(r.Context(), participantID)
	if err != nil {
		s.respondError(w, r, err, "participant not found")
		return
	}

	// The detail view omits trip_id and is_owner, matching the web client's
	// expectations.
	s.writeJSON(w, http.StatusOK, map[string]any{"participant": map[string]any{
		"id":        participant.ID,
		"email":     participant.Email,
		"name":      participant.Name,
		"confirmed": participant.Confirmed,
	}})
}

// listParticipants handles GET /trips/{tripID}/participants.
func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	participants, err := s.participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"participants": participants})
}
