// Package form holds the live aggregate of the booking form's field values
// and the cross-field validity rule that gates submission.
package form

import (
	"net/url"
	"strings"
	"time"
)

// PhoneConfirmation is the client's answer to "is this still your number?".
// The zero value means no choice has been made yet.
type PhoneConfirmation string

const (
	PhoneUnset     PhoneConfirmation = ""
	PhoneConfirmed PhoneConfirmation = "yes"
	PhoneNeedsNew  PhoneConfirmation = "no"
)

// Chosen reports whether the client has answered either way.
func (p PhoneConfirmation) Chosen() bool {
	return p == PhoneConfirmed || p == PhoneNeedsNew
}

// Prefill carries the optional inbound key-value prefill (query parameters
// on session creation). Decoded once and echoed back verbatim in the
// submission payload.
type Prefill struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ProjectInfo string `json:"projectInfo"`
}

// PrefillFromQuery reads the supported prefill keys from already-decoded
// query values.
func PrefillFromQuery(q url.Values) Prefill {
	return Prefill{
		Name:        q.Get("name"),
		Phone:       q.Get("phone"),
		ProjectInfo: q.Get("projectInfo"),
	}
}

// Snapshot is the live aggregate of current field values for one form
// session. The session engine mutates it through events; validity and
// submission read it.
type Snapshot struct {
	Name                string            `json:"name"`
	Phone               string            `json:"phone"`
	SelectedDate        *time.Time        `json:"selectedDate,omitempty"`
	SelectedTime        string            `json:"selectedTime"`
	PhoneConfirmation   PhoneConfirmation `json:"phoneConfirmation"`
	NewPhoneNumber      string            `json:"newPhoneNumber"`
	ExistingProjectInfo string            `json:"existingProjectInfo"`
	JobDetails          string            `json:"jobDetails"`
	Prefill             Prefill           `json:"prefill"`
}

// NewSnapshot seeds a snapshot from the inbound prefill.
func NewSnapshot(p Prefill) Snapshot {
	return Snapshot{
		Name:                p.Name,
		Phone:               p.Phone,
		ExistingProjectInfo: p.ProjectInfo,
		Prefill:             p,
	}
}

// EffectivePhone resolves the number the booking should use: the existing
// number when the client confirmed it, otherwise the newly entered one.
func (s Snapshot) EffectivePhone() string {
	if s.PhoneConfirmation == PhoneConfirmed {
		return s.Phone
	}
	return strings.TrimSpace(s.NewPhoneNumber)
}
