package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ericsromero/planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
type ParticipantRepo interface {
	// Create inserts a new participant and returns the persisted record with
	// the DB-generated id populated.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a single participant by its UUID primary key.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns all participants of a trip in a stable order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// ListInviteesByTripID returns the non-owner participants of a trip.
	// These are the recipients of the confirmation fan-out.
	ListInviteesByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm flips confirmed from false to true in a single conditional
	// UPDATE, returning whether this call performed the transition.
	// See TripRepo.Confirm for the race this avoids.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// Create inserts a new participant row and returns the full persisted record.
func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (trip_id, email, name, is_owner, confirmed)
		VALUES (@trip_id, @email, @name, @is_owner, @confirmed)
		RETURNING id, trip_id, email, name, is_owner, confirmed`

	args := pgx.NamedArgs{
		"trip_id":   p.TripID,
		"email":     p.Email,
		"name":      p.Name,
		"is_owner":  p.IsOwner,
		"confirmed": p.Confirmed,
	}

	result, err := scanParticipant(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a participant by primary key.
func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT id, trip_id, email, name, is_owner, confirmed
		FROM participants
		WHERE id = @id`

	result, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns every participant of the trip, owner included.
func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return r.list(ctx, "repo.ParticipantRepo.ListByTripID", `
		SELECT id, trip_id, email, name, is_owner, confirmed
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY id`, pgx.NamedArgs{"trip_id": tripID})
}

// ListInviteesByTripID returns the trip's participants excluding the owner.
func (r *pgParticipantRepo) ListInviteesByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return r.list(ctx, "repo.ParticipantRepo.ListInviteesByTripID", `
		SELECT id, trip_id, email, name, is_owner, confirmed
		FROM participants
		WHERE trip_id = @trip_id AND is_owner = false
		ORDER BY id`, pgx.NamedArgs{"trip_id": tripID})
}

// list runs a participant query and scans all rows. op names the caller for
// error wrapping.
func (r *pgParticipantRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return participants, nil
}

// Confirm performs the one-way confirmed transition as a single conditional statement.
func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE participants SET confirmed = true WHERE id = @id AND confirmed = false`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanParticipant maps a single database row into a domain.Participant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Email, &p.Name, &p.IsOwner, &p.Confirmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
