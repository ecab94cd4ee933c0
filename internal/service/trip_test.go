package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/repo"
	"github.com/ericsromero/planner/internal/service"
)

// testURLs are the base URLs injected into services under test.
var testURLs = service.BaseURLs{
	API: "http://localhost:3333",
	Web: "http://localhost:3000",
}

// discardLogger silences service logging in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validTrip returns a trip starting tomorrow and ending three days later.
// Dates are always in the future so validation passes regardless of when the
// test runs.
func validTrip() domain.Trip {
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	return domain.Trip{
		Destination: "Paris",
		StartsAt:    start,
		EndsAt:      start.Add(72 * time.Hour),
	}
}

func newTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mail *recordingMailer) *service.TripService {
	return service.NewTripService(trips, participants, mail, testURLs, discardLogger())
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_OK(t *testing.T) {
	input := validTrip()
	stored := input
	stored.ID = uuid.New()

	var gotParticipants []domain.Participant
	trips := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip, participants []domain.Participant) (domain.Trip, error) {
			gotParticipants = participants
			return stored, nil
		},
	}
	mail := &recordingMailer{}
	svc := newTripService(trips, &mockParticipantRepo{}, mail)

	got, err := svc.Create(context.Background(), input, "Ana", "ana@example.com", []string{"bob@example.com", "carol@example.com"})

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	// One owner plus one participant per invited email, owner first.
	require.Len(t, gotParticipants, 3)
	owner := gotParticipants[0]
	assert.Equal(t, "ana@example.com", owner.Email)
	assert.Equal(t, "Ana", owner.Name)
	assert.True(t, owner.IsOwner)
	assert.True(t, owner.Confirmed, "owner must be pre-confirmed")
	for _, p := range gotParticipants[1:] {
		assert.False(t, p.IsOwner)
		assert.False(t, p.Confirmed)
		assert.Empty(t, p.Name)
	}

	// Exactly one email: the owner's trip confirmation link.
	require.Equal(t, 1, mail.count())
	assert.Equal(t, []string{"ana@example.com"}, mail.recipients())
	assert.Contains(t, mail.sends[0].body, fmt.Sprintf("http://localhost:3333/trips/%s/confirm", stored.ID))
}

func TestTripService_Create_StartInPast(t *testing.T) {
	input := validTrip()
	input.StartsAt = time.Now().Add(-time.Hour)

	mail := &recordingMailer{}
	svc := newTripService(&mockTripRepo{}, &mockParticipantRepo{}, mail)

	_, err := svc.Create(context.Background(), input, "Ana", "ana@example.com", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "start date")
	assert.Zero(t, mail.count(), "no email on validation failure")
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	input := validTrip()
	input.EndsAt = input.StartsAt.Add(-time.Hour)

	svc := newTripService(&mockTripRepo{}, &mockParticipantRepo{}, &recordingMailer{})

	_, err := svc.Create(context.Background(), input, "Ana", "ana@example.com", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "end date")
}

func TestTripService_Create_ShortDestination(t *testing.T) {
	input := validTrip()
	input.Destination = "Rio"

	svc := newTripService(&mockTripRepo{}, &mockParticipantRepo{}, &recordingMailer{})

	_, err := svc.Create(context.Background(), input, "Ana", "ana@example.com", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestTripService_Create_EmailFailure verifies that once the trip row is
// committed, a failed owner email does not fail the request — there is no
// compensating rollback, delivery is best effort.
func TestTripService_Create_EmailFailure(t *testing.T) {
	stored := validTrip()
	stored.ID = uuid.New()
	trips := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip, _ []domain.Participant) (domain.Trip, error) {
			return stored, nil
		},
	}
	mail := &recordingMailer{err: errors.New("smtp: connection refused")}
	svc := newTripService(trips, &mockParticipantRepo{}, mail)

	got, err := svc.Create(context.Background(), validTrip(), "Ana", "ana@example.com", nil)

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestTripService_Create_RepoError(t *testing.T) {
	trips := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip, _ []domain.Participant) (domain.Trip, error) {
			return domain.Trip{}, errors.New("boom")
		},
	}
	mail := &recordingMailer{}
	svc := newTripService(trips, &mockParticipantRepo{}, mail)

	_, err := svc.Create(context.Background(), validTrip(), "Ana", "ana@example.com", nil)

	require.Error(t, err)
	assert.Zero(t, mail.count(), "no email when the database write fails")
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_OK(t *testing.T) {
	input := validTrip()
	input.ID = uuid.New()
	trips := &mockTripRepo{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			return trip, nil
		},
	}
	svc := newTripService(trips, &mockParticipantRepo{}, &recordingMailer{})

	got, err := svc.Update(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input.ID, got.ID)
}

func TestTripService_Update_NotFound(t *testing.T) {
	trips := &mockTripRepo{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := newTripService(trips, &mockParticipantRepo{}, &recordingMailer{})

	input := validTrip()
	input.ID = uuid.New()
	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Confirm ---------------------------------------------------------------

// confirmFixtures returns a stateful trip repo and two invitees, simulating a
// real unconfirmed trip whose confirmed flag flips exactly once.
func confirmFixtures(t *testing.T) (*mockTripRepo, *mockParticipantRepo, domain.Trip, []domain.Participant) {
	t.Helper()
	trip := validTrip()
	trip.ID = uuid.New()

	invitees := []domain.Participant{
		{ID: uuid.New(), TripID: trip.ID, Email: "bob@example.com"},
		{ID: uuid.New(), TripID: trip.ID, Email: "carol@example.com"},
	}

	confirmed := false
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			got := trip
			got.Confirmed = confirmed
			return got, nil
		},
		confirm: func(_ context.Context, _ uuid.UUID) (bool, error) {
			if confirmed {
				return false, nil
			}
			confirmed = true
			return true, nil
		},
	}
	participants := &mockParticipantRepo{
		listInviteesByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return invitees, nil
		},
	}
	return trips, participants, trip, invitees
}

func TestTripService_Confirm_FirstVisit(t *testing.T) {
	trips, participants, trip, invitees := confirmFixtures(t)
	mail := &recordingMailer{}
	svc := newTripService(trips, participants, mail)

	got, err := svc.Confirm(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, got.Confirmed)

	// One email per invitee, none to the owner.
	assert.Equal(t, len(invitees), mail.count())
	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"}, mail.recipients())

	// Each invitee gets their own confirmation link, not the trip's.
	for _, s := range mail.sends {
		for _, p := range invitees {
			if s.to == p.Email {
				assert.Contains(t, s.body, fmt.Sprintf("http://localhost:3333/participants/%s/confirm", p.ID))
			}
		}
	}
}

// TestTripService_Confirm_Idempotent covers the emailed-link revisit: the
// second confirmation performs no transition and sends no additional emails,
// but still returns the trip so the caller redirects identically.
func TestTripService_Confirm_Idempotent(t *testing.T) {
	trips, participants, trip, invitees := confirmFixtures(t)
	mail := &recordingMailer{}
	svc := newTripService(trips, participants, mail)

	first, err := svc.Confirm(context.Background(), trip.ID)
	require.NoError(t, err)
	require.Equal(t, len(invitees), mail.count())

	second, err := svc.Confirm(context.Background(), trip.ID)
	require.NoError(t, err)

	assert.Equal(t, len(invitees), mail.count(), "revisit must not re-send invites")
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Confirmed)
}

func TestTripService_Confirm_NotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	mail := &recordingMailer{}
	svc := newTripService(trips, &mockParticipantRepo{}, mail)

	_, err := svc.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, mail.count())
}

// TestTripService_Confirm_SendFailureIsolated verifies per-recipient error
// isolation: when every send fails, Confirm still succeeds and the state
// transition stands.
func TestTripService_Confirm_SendFailureIsolated(t *testing.T) {
	trips, participants, trip, _ := confirmFixtures(t)
	mail := &recordingMailer{err: errors.New("smtp: 550 rejected")}
	svc := newTripService(trips, participants, mail)

	got, err := svc.Confirm(context.Background(), trip.ID)

	require.NoError(t, err)
	assert.True(t, got.Confirmed)

	// The transition already happened; a revisit must not retry the fan-out.
	mail.err = nil
	_, err = svc.Confirm(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Zero(t, mail.count())
}
