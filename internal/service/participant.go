package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/mailer"
	"github.com/ericsromero/planner/internal/repo"
)

// ParticipantService implements business logic for Participant operations:
// invite issuance and the participant half of the confirmation workflow.
type ParticipantService struct {
	participants repo.ParticipantRepo
	trips        repo.TripRepo
	mail         mailer.Mailer
	urls         BaseURLs
	log          *slog.Logger
}

// NewParticipantService constructs a ParticipantService with its dependencies.
func NewParticipantService(participants repo.ParticipantRepo, trips repo.TripRepo, mail mailer.Mailer, urls BaseURLs, log *slog.Logger) *ParticipantService {
	return &ParticipantService{participants: participants, trips: trips, mail: mail, urls: urls, log: log}
}

// Invite creates an unconfirmed participant (empty name, not owner) on an
// existing trip and emails them their confirmation link.
// Returns domain.ErrNotFound before any mutation if the trip does not exist.
// Nothing prevents inviting the same email twice; the second invite simply
// creates a second participant.
//
// As with trip creation, the email is best effort once the row is committed.
func (s *ParticipantService) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	participant, err := s.participants.Create(ctx, domain.Participant{TripID: tripID, Email: email})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Invite: %w", err)
	}

	subject, body, err := mailer.ParticipantConfirmation(
		trip.Destination, trip.StartsAt, trip.EndsAt,
		s.urls.ParticipantConfirmation(participant.ID),
	)
	if err == nil {
		err = s.mail.Send(ctx, email, subject, body)
	}
	if err != nil {
		s.log.WarnContext(ctx, "invite email failed",
			"trip_id", tripID, "participant_id", participant.ID, "to", email, "error", err)
	}

	return participant, nil
}

// Confirm flips a participant's confirmed flag. It is the terminal step of
// the confirmation flow and sends no email. Revisiting the link is harmless:
// the conditional UPDATE simply affects zero rows the second time, and the
// caller redirects to the same trip page either way.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}

	if _, err := s.participants.Confirm(ctx, id); err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	participant.Confirmed = true

	return participant, nil
}

// GetByID returns a single participant by ID.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return participant, nil
}

// ListByTripID returns all participants of a trip in a stable order.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}
