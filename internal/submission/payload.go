// Package submission builds the outbound booking document and drives the
// submit state machine: one webhook delivery per gate-true submit, with a
// re-entrancy guard so duplicate submits never produce duplicate requests.
package submission

import (
	"errors"
	"fmt"
	"time"

	"github.com/traderbros/booking-platform/internal/form"
)

// ErrIncompleteForm is returned when a payload is requested from a snapshot
// missing its date or time. The coordinator checks the gate first, so
// hitting this is a defect, not a user condition.
var ErrIncompleteForm = errors.New("submission: snapshot missing date or time")

// Payload is the immutable document POSTed to the webhook. Field names
// follow the receiving automation's expected schema.
type Payload struct {
	ClientName           string `json:"clientName"`
	AutofilledPhone      string `json:"autofilledPhone"`
	PhoneNumber          string `json:"phoneNumber"`
	PhoneNumberConfirmed bool   `json:"phoneNumberConfirmed"`
	OriginalPhoneNumber  string `json:"originalPhoneNumber"`

	ConsultationDate     string `json:"consultationDate"` // ISO date, 2006-01-02
	ConsultationTime     string `json:"consultationTime"` // 24-hour HH:MM
	ExistingProjectInfo  string `json:"existingProjectInfo"`
	AdditionalJobDetails string `json:"additionalJobDetails"`

	FormattedDate string `json:"formattedDate"`
	FormattedTime string `json:"formattedTime"`

	SubmissionTimestamp string       `json:"submissionTimestamp"` // RFC 3339
	Source              string       `json:"source"`
	UserAgent           string       `json:"userAgent"`
	URLParams           form.Prefill `json:"urlParams"`
}

// longDateLayout matches the form's display locale, e.g.
// "Monday, 14 September 2026".
const longDateLayout = "Monday, 2 January 2006"

// BuildPayload derives the document from the live snapshot. The snapshot is
// copied by value; the payload never changes after this returns.
func BuildPayload(snap form.Snapshot, now time.Time, source, userAgent string) (Payload, error) {
	if snap.SelectedDate == nil || snap.SelectedTime == "" {
		return Payload{}, ErrIncompleteForm
	}
	date := *snap.SelectedDate
	return Payload{
		ClientName:           snap.Name,
		AutofilledPhone:      snap.Phone,
		PhoneNumber:          snap.EffectivePhone(),
		PhoneNumberConfirmed: snap.PhoneConfirmation == form.PhoneConfirmed,
		OriginalPhoneNumber:  snap.Phone,
		ConsultationDate:     date.Format("2006-01-02"),
		ConsultationTime:     snap.SelectedTime,
		ExistingProjectInfo:  snap.ExistingProjectInfo,
		AdditionalJobDetails: snap.JobDetails,
		FormattedDate:        date.Format(longDateLayout),
		FormattedTime:        snap.SelectedTime,
		SubmissionTimestamp:  now.UTC().Format(time.RFC3339),
		Source:               source,
		UserAgent:            userAgent,
		URLParams:            snap.Prefill,
	}, nil
}

// Confirmation is the user-facing summary shown after a successful submit.
type Confirmation struct {
	Message             string `json:"message"`
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Date                string `json:"date"`
	Time                string `json:"time"`
	ExistingProjectInfo string `json:"existingProjectInfo,omitempty"`
	JobDetails          string `json:"jobDetails,omitempty"`
	ConfirmedAt         string `json:"confirmedAt"`
}

func buildConfirmation(p Payload, date time.Time, now time.Time) *Confirmation {
	short := date.Format("2 January")
	return &Confirmation{
		Message: fmt.Sprintf(
			"Can't wait %s, looking forward to our chat on %s at %s. Have a great rest of your day!",
			p.ClientName, short, p.FormattedTime),
		Name:                p.ClientName,
		Phone:               p.PhoneNumber,
		Date:                p.FormattedDate,
		Time:                p.FormattedTime,
		ExistingProjectInfo: p.ExistingProjectInfo,
		JobDetails:          p.AdditionalJobDetails,
		ConfirmedAt:         now.UTC().Format(time.RFC3339),
	}
}
