// Package session runs one booking-form instance per session: a calendar
// widget plus a form snapshot, mutated only through a closed set of input
// events, with the submit gate recomputed after every event.
package session

import (
	"time"

	"github.com/traderbros/booking-platform/internal/calendar"
	"github.com/traderbros/booking-platform/internal/form"
)

// Session is the per-form-instance state. It is persisted between requests
// and rebuilt into live components by the engine.
type Session struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	Calendar      calendar.State `json:"calendar"`
	Snapshot      form.Snapshot  `json:"snapshot"`
	SubmitEnabled bool           `json:"submitEnabled"`
}

// New creates a session with the calendar anchored at now and the snapshot
// seeded from the inbound prefill.
func New(id string, now time.Time, prefill form.Prefill) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now.UTC(),
		Calendar:  calendar.New(now).State(),
		Snapshot:  form.NewSnapshot(prefill),
	}
}

// Widget rebuilds the live calendar widget from the stored state.
func (s *Session) Widget() *calendar.Widget {
	return calendar.Restore(s.Calendar)
}
