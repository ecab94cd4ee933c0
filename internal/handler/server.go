// Package handler implements the HTTP handlers for the planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, participant.go, etc.) but all share the same Server struct
// so they can access its dependencies. Handlers only parse requests, call a
// service, and shape the response — no business logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/spec"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, ownerName, ownerEmail string, inviteEmails []string) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// ParticipantServicer defines the participant operations the handlers depend on.
type ParticipantServicer interface {
	Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ActivityServicer defines the activity operations the handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error)
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, tripID, activityID uuid.UUID) error
}

// LinkServicer defines the link operations the handlers depend on.
type LinkServicer interface {
	Create(ctx context.Context, link domain.Link) (domain.Link, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// Server holds the handler dependencies for all API endpoints.
// webBaseURL is the frontend base used as the redirect target of the
// confirmation endpoints.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer
	webBaseURL   string
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, participants ParticipantServicer, activities ActivityServicer, links LinkServicer, webBaseURL string, log *slog.Logger) *Server {
	return &Server{
		trips:        trips,
		participants: participants,
		activities:   activities,
		links:        links,
		webBaseURL:   webBaseURL,
		log:          log,
	}
}

// Routes returns the chi router with every API endpoint registered.
// Mount this on the application router after the shared middleware.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.createTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Put("/", s.updateTrip)
			r.Get("/confirm", s.confirmTrip)
			r.Post("/invites", s.createInvite)
			r.Get("/participants", s.listParticipants)
			r.Post("/activities", s.createActivity)
			r.Get("/activities", s.listActivities)
			r.Put("/activities/{activityID}", s.updateActivity)
			r.Delete("/activities/{activityID}", s.deleteActivity)
			r.Post("/links", s.createLink)
			r.Get("/links", s.listLinks)
		})
	})

	// Singular path, kept for compatibility with the web client.
	r.Get("/participant/{participantID}", s.getParticipant)
	r.Get("/participants/{participantID}/confirm", s.confirmParticipant)

	return r
}

// getHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getOpenAPI handles GET /openapi.yaml, serving the embedded API description.
func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// tripPage returns the frontend trip page URL the confirmation endpoints
// redirect to.
func (s *Server) tripPage(tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s", s.webBaseURL, tripID)
}

// writeJSON encodes v as the response body with the given status code.
// Encoding failures are logged; by then the status line is already written,
// so there is nothing better to do.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
