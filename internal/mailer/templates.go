package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"embed"
)

// templatesFS holds the email body templates embedded at compile time, so the
// binary never depends on a filesystem path at runtime.
//
//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// tripDates is the human-facing date format used in subjects and bodies.
const tripDates = "Jan 2, 2006"

// templateData is the payload shared by both confirmation templates.
type templateData struct {
	OwnerName        string
	Destination      string
	StartsAt         string
	EndsAt           string
	ConfirmationLink string
}

// TripConfirmation renders the email asking a trip's owner to confirm the
// trip. link is the API confirmation URL for the trip.
func TripConfirmation(ownerName, destination string, startsAt, endsAt time.Time, link string) (subject, body string, err error) {
	subject = fmt.Sprintf("Confirm your trip to %s on %s", destination, startsAt.Format(tripDates))
	body, err = render("trip_confirmation.html", templateData{
		OwnerName:        ownerName,
		Destination:      destination,
		StartsAt:         startsAt.Format(tripDates),
		EndsAt:           endsAt.Format(tripDates),
		ConfirmationLink: link,
	})
	return subject, body, err
}

// ParticipantConfirmation renders the email asking an invitee to confirm
// their presence. link is the API confirmation URL for the participant.
func ParticipantConfirmation(destination string, startsAt, endsAt time.Time, link string) (subject, body string, err error) {
	subject = fmt.Sprintf("Confirm your trip to %s on %s", destination, startsAt.Format(tripDates))
	body, err = render("participant_confirmation.html", templateData{
		Destination:      destination,
		StartsAt:         startsAt.Format(tripDates),
		EndsAt:           endsAt.Format(tripDates),
		ConfirmationLink: link,
	})
	return subject, body, err
}

// render executes the named template into a string.
func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mailer: render %s: %w", name, err)
	}
	return buf.String(), nil
}
