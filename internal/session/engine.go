package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/traderbros/booking-platform/internal/calendar"
	"github.com/traderbros/booking-platform/internal/form"
)

// EventType names one of the closed set of form input events.
type EventType string

const (
	EventSetField      EventType = "set_field"
	EventOpenCalendar  EventType = "open_calendar"
	EventCloseCalendar EventType = "close_calendar"
	EventNavigate      EventType = "navigate"
	EventSelectDate    EventType = "select_date"
	EventSelectTime    EventType = "select_time"
	EventConfirmPhone  EventType = "confirm_phone"
)

// Event is one user input applied to a session. Which extra fields are
// read depends on Type.
type Event struct {
	Type      EventType `json:"type"`
	Field     string    `json:"field,omitempty"`
	Value     string    `json:"value,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Date      string    `json:"date,omitempty"` // ISO calendar date, 2006-01-02
	Time      string    `json:"time,omitempty"` // 24-hour HH:MM
}

var (
	ErrUnknownEvent     = errors.New("session: unknown event type")
	ErrUnknownField     = errors.New("session: unknown field")
	ErrUnknownDirection = errors.New("session: unknown navigate direction")
	ErrBadDate          = errors.New("session: malformed date")
	ErrBadChoice        = errors.New("session: phone confirmation must be yes or no")
)

// Engine applies events to sessions. It carries the configured time-slot
// enumeration; everything else the events need lives on the session.
type Engine struct {
	slots map[string]struct{}
	order []string
}

// NewEngine creates an engine offering the given time slots.
func NewEngine(slots []string) *Engine {
	set := make(map[string]struct{}, len(slots))
	order := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, dup := set[s]; dup {
			continue
		}
		set[s] = struct{}{}
		order = append(order, s)
	}
	return &Engine{slots: set, order: order}
}

// Slots returns the offered time slots in configured order.
func (e *Engine) Slots() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Apply dispatches one event to the session and recomputes the submit gate.
// Malformed events return an error and leave the session untouched.
// Well-formed but disallowed actions (a pick on a disabled day, a slot that
// is not offered, navigation past the window) are silent no-ops: the gate
// stays closed and no error surfaces, matching the form's disabled
// affordances.
func (e *Engine) Apply(s *Session, evt Event) error {
	switch evt.Type {
	case EventSetField:
		if err := setField(&s.Snapshot, evt.Field, evt.Value); err != nil {
			return err
		}
	case EventOpenCalendar:
		w := s.Widget()
		w.Open()
		s.Calendar = w.State()
	case EventCloseCalendar:
		w := s.Widget()
		w.Close()
		s.Calendar = w.State()
	case EventNavigate:
		dir, err := parseDirection(evt.Direction)
		if err != nil {
			return err
		}
		w := s.Widget()
		w.Navigate(dir)
		s.Calendar = w.State()
	case EventSelectDate:
		date, err := time.Parse("2006-01-02", evt.Date)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadDate, evt.Date)
		}
		w := s.Widget()
		if w.Select(date) {
			s.Calendar = w.State()
			sel, _ := w.Selected()
			s.Snapshot.SelectedDate = &sel
		}
	case EventSelectTime:
		if _, offered := e.slots[evt.Time]; offered {
			s.Snapshot.SelectedTime = evt.Time
		}
	case EventConfirmPhone:
		choice := form.PhoneConfirmation(evt.Value)
		if !choice.Chosen() {
			return fmt.Errorf("%w: %q", ErrBadChoice, evt.Value)
		}
		s.Snapshot.PhoneConfirmation = choice
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, evt.Type)
	}

	s.SubmitEnabled = form.Valid(s.Snapshot)
	return nil
}

func setField(snap *form.Snapshot, field, value string) error {
	switch field {
	case "name":
		snap.Name = value
	case "phone":
		snap.Phone = value
	case "newPhoneNumber":
		snap.NewPhoneNumber = value
	case "existingProjectInfo":
		snap.ExistingProjectInfo = value
	case "jobDetails":
		snap.JobDetails = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func parseDirection(d string) (calendar.Direction, error) {
	switch d {
	case "previous":
		return calendar.Previous, nil
	case "next":
		return calendar.Next, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, d)
}
