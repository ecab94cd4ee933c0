package handler

import (
	"net/http"

	"github.com/ericsromero/planner/internal/domain"
)

// createLinkRequest is the body of POST /trips/{tripID}/links.
type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// createLink handles POST /trips/{tripID}/links.
func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	link := domain.Link{
		TripID: tripID,
		Title:  req.Title,
		URL:    req.URL,
	}
	created, err := s.links.Create(r.Context(), link)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{"linkId": created.ID})
}

// listLinks handles GET /trips/{tripID}/links.
func (s *Server) listLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondBadRequest(w, err.Error())
		return
	}

	links, err := s.links.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"links": links})
}
