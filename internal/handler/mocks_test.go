package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/handler"
)

const testWebBaseURL = "http://localhost:3000"

// ---- mock servicers --------------------------------------------------------
// Test doubles for the handler's servicer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip, ownerName, ownerEmail string, inviteEmails []string) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip, ownerName, ownerEmail string, inviteEmails []string) (domain.Trip, error) {
	return m.create(ctx, trip, ownerName, ownerEmail, inviteEmails)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.confirm(ctx, id)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockParticipantServicer struct {
	invite       func(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
	confirm      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockParticipantServicer) Invite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	return m.invite(ctx, tripID, email)
}
func (m *mockParticipantServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.confirm(ctx, id)
}
func (m *mockParticipantServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}

var _ handler.ParticipantServicer = (*mockParticipantServicer)(nil)

type mockActivityServicer struct {
	create   func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	listDays func(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error)
	update   func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	delete   func(ctx context.Context, tripID, activityID uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, activity)
}
func (m *mockActivityServicer) ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivities, error) {
	return m.listDays(ctx, tripID)
}
func (m *mockActivityServicer) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.update(ctx, activity)
}
func (m *mockActivityServicer) Delete(ctx context.Context, tripID, activityID uuid.UUID) error {
	return m.delete(ctx, tripID, activityID)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockLinkServicer struct {
	create       func(ctx context.Context, link domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkServicer) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	return m.create(ctx, link)
}
func (m *mockLinkServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

var _ handler.LinkServicer = (*mockLinkServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles one mock per servicer so tests can fill in just the one
// they exercise.
type serverMocks struct {
	trips        *mockTripServicer
	participants *mockParticipantServicer
	activities   *mockActivityServicer
	links        *mockLinkServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production. nil fields get an empty mock
// so unexpected calls panic loudly.
func newHTTPHandler(m serverMocks) http.Handler {
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.participants == nil {
		m.participants = &mockParticipantServicer{}
	}
	if m.activities == nil {
		m.activities = &mockActivityServicer{}
	}
	if m.links == nil {
		m.links = &mockLinkServicer{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(m.trips, m.participants, m.activities, m.links, testWebBaseURL, log)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeResponse decodes a JSON response body into a generic map.
func decodeResponse(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

// errorCode digs the error.code field out of a decoded error response.
func errorCode(t *testing.T, resp map[string]any) string {
	t.Helper()
	detail, ok := resp["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %v", resp)
	code, _ := detail["code"].(string)
	return code
}
