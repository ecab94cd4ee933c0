// Package service contains the business logic for the planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls and email side effects. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/mailer"
	"github.com/ericsromero/planner/internal/repo"
)

// maxConcurrentSends bounds the confirmation email fan-out so a trip with
// many invitees cannot exhaust SMTP connections.
const maxConcurrentSends = 8

// TripService implements business logic for Trip operations, including the
// trip half of the confirmation workflow.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mail         mailer.Mailer
	urls         BaseURLs
	log          *slog.Logger
}

// NewTripService constructs a TripService with its dependencies.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mail mailer.Mailer, urls BaseURLs, log *slog.Logger) *TripService {
	return &TripService{trips: trips, participants: participants, mail: mail, urls: urls, log: log}
}

// Create validates and persists a new trip together with its owner (created
// already confirmed) and one unconfirmed participant per invited email, all
// in one transaction. After the write commits it emails the owner the trip
// confirmation link.
//
// Email delivery is best effort: a send failure is logged but never fails the
// request, because the trip row already exists and there is no compensating
// rollback.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, ownerName, ownerEmail string, inviteEmails []string) (domain.Trip, error) {
	if err := validateTrip(trip, time.Now()); err != nil {
		return domain.Trip{}, err
	}

	participants := make([]domain.Participant, 0, len(inviteEmails)+1)
	participants = append(participants, domain.Participant{
		Email:     ownerEmail,
		Name:      ownerName,
		IsOwner:   true,
		Confirmed: true,
	})
	for _, email := range inviteEmails {
		participants = append(participants, domain.Participant{Email: email})
	}

	created, err := s.trips.Create(ctx, trip, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	subject, body, err := mailer.TripConfirmation(
		ownerName, created.Destination, created.StartsAt, created.EndsAt,
		s.urls.TripConfirmation(created.ID),
	)
	if err == nil {
		err = s.mail.Send(ctx, ownerEmail, subject, body)
	}
	if err != nil {
		s.log.WarnContext(ctx, "trip confirmation email failed",
			"trip_id", created.ID, "to", ownerEmail, "error", err)
	}

	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Update validates and updates destination and dates of an existing trip.
// The same date rules as Create apply.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip, time.Now()); err != nil {
		return domain.Trip{}, err
	}
	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Confirm performs the trip half of the two-phase confirmation workflow:
//
//  1. Look up the trip and its invitees. Returns domain.ErrNotFound before
//     any mutation if the trip does not exist.
//  2. Flip confirmed via a single conditional UPDATE. If the trip was already
//     confirmed nothing else happens — revisiting an emailed link must not
//     re-send invites.
//  3. On the first transition only, email every invitee their own
//     confirmation link. Sends run concurrently, are all awaited, and fail
//     independently: one bounced address never blocks the others.
//
// The returned trip lets the handler build the redirect target; it is the
// same whether or not this call performed the transition.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	invitees, err := s.participants.ListInviteesByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	transitioned, err := s.trips.Confirm(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if !transitioned {
		return trip, nil
	}
	trip.Confirmed = true

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, p := range invitees {
		p := p
		g.Go(func() error {
			subject, body, err := mailer.ParticipantConfirmation(
				trip.Destination, trip.StartsAt, trip.EndsAt,
				s.urls.ParticipantConfirmation(p.ID),
			)
			if err == nil {
				err = s.mail.Send(gctx, p.Email, subject, body)
			}
			if err != nil {
				s.log.WarnContext(gctx, "participant confirmation email failed",
					"trip_id", trip.ID, "participant_id", p.ID, "to", p.Email, "error", err)
			}
			// Always nil: a failed send must not cancel sibling sends.
			return nil
		})
	}
	_ = g.Wait()

	return trip, nil
}

// validateTrip enforces the business rules shared by Create and Update.
//   - Destination must be at least 4 characters after trimming.
//   - StartsAt must not be before now.
//   - EndsAt must not be before StartsAt.
func validateTrip(trip domain.Trip, now time.Time) error {
	if len(strings.TrimSpace(trip.Destination)) < 4 {
		return fmt.Errorf("%w: destination must be at least 4 characters", domain.ErrValidation)
	}
	if trip.StartsAt.Before(now) {
		return fmt.Errorf("%w: invalid trip start date", domain.ErrValidation)
	}
	if trip.EndsAt.Before(trip.StartsAt) {
		return fmt.Errorf("%w: invalid trip end date", domain.ErrValidation)
	}
	return nil
}
