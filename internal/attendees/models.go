package attendees

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AttendeeID is the identifier assigned by the attendance service. It is
// accepted as either a JSON string or a JSON number.
type AttendeeID string

func (id *AttendeeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = AttendeeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("attendee id must be a string or number: %w", err)
	}
	*id = AttendeeID(n.String())
	return nil
}

// Attendee is one registrant as recorded by the attendance service
type Attendee struct {
	ID      AttendeeID `json:"id"`
	Name    string     `json:"name"`
	Address string     `json:"address"`
	Message string     `json:"message"`
}

// HasMessage reports whether the attendee left a non-empty note
func (a Attendee) HasMessage() bool {
	return a.Message != ""
}

// RegistrationRequest is the payload sent to the attendance service. The form
// tags bind the registration page, the json tags the API and the wire body.
type RegistrationRequest struct {
	Name    string `json:"name" form:"name" validate:"min=2"`
	Address string `json:"address" form:"address" validate:"min=5"`
	Message string `json:"message" form:"message"`
}

// EventDetails is the event copy rendered on both pages
type EventDetails struct {
	Title    string
	Subtitle string
	DateTime string
	Welcome  string
	Location string
	Quote    string
	Footer   string
}

// Card is the confirmation page view of one attendee
type Card struct {
	ID         string
	Name       string
	Address    string
	Message    string
	Initials   string
	HasMessage bool
	IsViewer   bool
}

// Roster is the confirmation page view of the attendee list
type Roster struct {
	Viewer string
	Cards  []Card
}

// Count returns the number of attendees shown
func (r Roster) Count() int {
	return len(r.Cards)
}

// Initials takes the first character of each whitespace-separated token of
// name and upper-cases the result.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
