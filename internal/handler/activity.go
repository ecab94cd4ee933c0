package handler

import (
	"net/http"
	"time"

	"github.com/ericsromero/planner/internal/domain"
)

// activityRequest is the body of both POST and PUT activity endpoints.
type activityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

// createActivity handles POST /trips/{tripID}/activities.
func (s *Server) createActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var req activityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	activity := domain.Activity{
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: req.OccursAt,
	}
	created, err := s.activities.Create(r.Context(), activity)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{"activityId": created.ID})
}

// listActivities handles GET /trips/{tripID}/activities.
// The response has one entry per day of the trip, each with that day's
// activities (possibly empty).
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	days, err := s.activities.ListDays(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"activities": days})
}

// updateActivity handles PUT /trips/{tripID}/activities/{activityID}.
func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}
	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var req activityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	activity := domain.Activity{
		ID:       activityID,
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: req.OccursAt,
	}
	updated, err := s.activities.Update(r.Context(), activity)
	if err != nil {
		s.respondError(w, r, err, "activity not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"activity": updated})
}

// deleteActivity handles DELETE /trips/{tripID}/activities/{activityID}.
func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}
	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	if err := s.activities.Delete(r.Context(), tripID, activityID); err != nil {
		s.respondError(w, r, err, "activity not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
