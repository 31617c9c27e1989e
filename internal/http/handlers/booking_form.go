package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/traderbros/booking-platform/internal/bookings"
	"github.com/traderbros/booking-platform/internal/calendar"
	"github.com/traderbros/booking-platform/internal/form"
	"github.com/traderbros/booking-platform/internal/notify"
	"github.com/traderbros/booking-platform/internal/observability/metrics"
	"github.com/traderbros/booking-platform/internal/session"
	"github.com/traderbros/booking-platform/internal/submission"
	"github.com/traderbros/booking-platform/pkg/logging"
)

// BookingFormHandler serves the per-session booking form API: session
// creation with URL prefill, the event stream that mutates form state, and
// the submit/acknowledge lifecycle.
type BookingFormHandler struct {
	store    session.Store
	engine   *session.Engine
	client   *submission.Client
	source   string
	bookings *bookings.Service
	notifier *notify.Service
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	now      func() time.Time

	mu           sync.Mutex
	coordinators map[string]*submission.Coordinator
	locks        map[string]*sync.Mutex
}

// NewBookingFormHandler creates the form handler. bookingsSvc and notifier
// may be nil; successful submissions are then delivered to the webhook only.
func NewBookingFormHandler(
	store session.Store,
	engine *session.Engine,
	client *submission.Client,
	source string,
	bookingsSvc *bookings.Service,
	notifier *notify.Service,
	m *metrics.BookingMetrics,
	logger *logging.Logger,
) *BookingFormHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingFormHandler{
		store:        store,
		engine:       engine,
		client:       client,
		source:       source,
		bookings:     bookingsSvc,
		notifier:     notifier,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
		coordinators: make(map[string]*submission.Coordinator),
		locks:        make(map[string]*sync.Mutex),
	}
}

// lockSession serializes event application per session; two racing event
// requests must not interleave their load-apply-save cycles. Submission
// concurrency stays the coordinator's job.
func (h *BookingFormHandler) lockSession(sessionID string) func() {
	h.mu.Lock()
	l, ok := h.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		h.locks[sessionID] = l
	}
	h.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// coordinator returns the per-session coordinator, creating it on first use.
func (h *BookingFormHandler) coordinator(sessionID string) *submission.Coordinator {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.coordinators[sessionID]
	if !ok {
		c = submission.NewCoordinator(h.client, h.source, h.logger, h.metrics)
		h.coordinators[sessionID] = c
	}
	return c
}

func (h *BookingFormHandler) dropCoordinator(sessionID string) {
	h.mu.Lock()
	delete(h.coordinators, sessionID)
	delete(h.locks, sessionID)
	h.mu.Unlock()
}

// CellView is one calendar grid cell as the client renders it.
type CellView struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	InMonth    bool   `json:"inMonth"`
	Today      bool   `json:"today"`
	Selected   bool   `json:"selected"`
	Selectable bool   `json:"selectable"`
}

// CalendarView is the widget's render state.
type CalendarView struct {
	Open         bool       `json:"open"`
	VisibleMonth string     `json:"visibleMonth"`
	SelectedDate string     `json:"selectedDate,omitempty"`
	Grid         []CellView `json:"grid"`
}

// SessionView is the full form state returned after creation, reads, and
// every applied event.
type SessionView struct {
	SessionID     string       `json:"sessionId"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	NewPhone      string       `json:"newPhoneNumber"`
	PhoneChoice   string       `json:"phoneConfirmation"`
	ProjectInfo   string       `json:"existingProjectInfo"`
	JobDetails    string       `json:"jobDetails"`
	SelectedTime  string       `json:"selectedTime"`
	TimeSlots     []string     `json:"timeSlots"`
	Calendar      CalendarView `json:"calendar"`
	SubmitEnabled bool         `json:"submitEnabled"`
}

func (h *BookingFormHandler) view(s *session.Session) SessionView {
	w := s.Widget()
	grid := w.Grid()
	cells := make([]CellView, 0, len(grid))
	for _, c := range grid {
		cells = append(cells, CellView{
			Date:       c.Date.Format("2006-01-02"),
			Day:        c.Day,
			InMonth:    c.InMonth,
			Today:      c.IsToday,
			Selected:   c.IsSelected,
			Selectable: c.Selectable(),
		})
	}
	cal := CalendarView{
		Open:         w.IsOpen(),
		VisibleMonth: w.VisibleMonth().String(),
		Grid:         cells,
	}
	if sel, ok := w.Selected(); ok {
		cal.SelectedDate = sel.Format("2006-01-02")
	}
	return SessionView{
		SessionID:     s.ID,
		Name:          s.Snapshot.Name,
		Phone:         s.Snapshot.Phone,
		NewPhone:      s.Snapshot.NewPhoneNumber,
		PhoneChoice:   string(s.Snapshot.PhoneConfirmation),
		ProjectInfo:   s.Snapshot.ExistingProjectInfo,
		JobDetails:    s.Snapshot.JobDetails,
		SelectedTime:  s.Snapshot.SelectedTime,
		TimeSlots:     h.engine.Slots(),
		Calendar:      cal,
		SubmitEnabled: s.SubmitEnabled,
	}
}

// CreateSession starts a new form session, seeding name/phone/projectInfo
// from the query string the way the hosted form reads its URL parameters.
// POST /bookings/sessions
func (h *BookingFormHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	prefill := form.PrefillFromQuery(r.URL.Query())
	s := session.New(uuid.NewString(), h.now(), prefill)
	s.SubmitEnabled = false

	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save new session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveSessionStarted()
	h.logger.Info("booking session started", "session_id", s.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.view(s))
}

// GetSession returns the current form state.
// GET /bookings/sessions/{sessionID}
func (h *BookingFormHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.view(s))
}

// ApplyEvent applies one form input event and returns the updated state.
// Malformed events are 400s; well-formed but disallowed ones (disabled
// dates, unoffered slots) apply as silent no-ops.
// POST /bookings/sessions/{sessionID}/events
func (h *BookingFormHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	var evt session.Event
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	unlock := h.lockSession(chi.URLParam(r, "sessionID"))
	defer unlock()

	s, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.engine.Apply(s, evt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save session", "session_id", s.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.view(s))
}

// SubmitResponse is what a submit attempt returns. Confirmation is set on
// success, Notice on failure; a dropped duplicate carries neither.
type SubmitResponse struct {
	Outcome       string                   `json:"outcome"`
	Confirmation  *submission.Confirmation `json:"confirmation,omitempty"`
	Notice        string                   `json:"notice,omitempty"`
	SubmitEnabled bool                     `json:"submitEnabled"`
}

// Submit runs one submission attempt for the session.
// POST /bookings/sessions/{sessionID}/submit
func (h *BookingFormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	coord := h.coordinator(s.ID)
	result := coord.Submit(r.Context(), s.Snapshot, r.UserAgent())

	status := http.StatusOK
	switch result.Outcome {
	case submission.OutcomeSuccess:
		s.SubmitEnabled = false
		h.recordBooking(r, s)
	case submission.OutcomeFailed:
		// The form stays filled and the gate stays open for a retry.
		status = http.StatusBadGateway
	case submission.OutcomeRejected:
		status = http.StatusConflict
	case submission.OutcomeDropped:
		status = http.StatusConflict
	}

	if err := h.store.Save(r.Context(), s); err != nil {
		h.logger.Error("failed to save session after submit", "session_id", s.ID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(SubmitResponse{
		Outcome:       string(result.Outcome),
		Confirmation:  result.Confirmation,
		Notice:        result.Notice,
		SubmitEnabled: s.SubmitEnabled,
	})
}

// recordBooking persists the accepted submission and emails the operator.
// Both are best-effort: the webhook already accepted, so failures here are
// logged and never surface to the client.
func (h *BookingFormHandler) recordBooking(r *http.Request, s *session.Session) {
	if h.bookings == nil {
		return
	}
	snap := s.Snapshot
	if snap.SelectedDate == nil {
		return
	}
	req := &bookings.CreateBookingRequest{
		ClientName:          snap.Name,
		Phone:               snap.EffectivePhone(),
		PhoneConfirmed:      snap.PhoneConfirmation == form.PhoneConfirmed,
		ConsultationDate:    calendar.Midnight(*snap.SelectedDate),
		ConsultationTime:    snap.SelectedTime,
		ExistingProjectInfo: snap.ExistingProjectInfo,
		JobDetails:          snap.JobDetails,
		Source:              h.source,
	}
	b, err := h.bookings.Record(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to record booking", "session_id", s.ID, "error", err)
		return
	}
	if h.notifier != nil {
		if err := h.notifier.NotifyBookingRecorded(r.Context(), b); err != nil {
			h.logger.Error("failed to notify operator", "booking_id", b.ID, "error", err)
		}
	}
}

// AckResponse reports the post-acknowledge state.
type AckResponse struct {
	State string `json:"state"`
}

// Acknowledge dismisses a terminal submit outcome. After a success the
// session is finished and removed; after a failure the coordinator re-arms
// and the session stays live for a retry.
// POST /bookings/sessions/{sessionID}/ack
func (h *BookingFormHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	coord := h.coordinator(s.ID)
	finished := coord.State() == submission.StateSuccess
	coord.Acknowledge()

	if finished {
		h.dropCoordinator(s.ID)
		if err := h.store.Delete(r.Context(), s.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			h.logger.Error("failed to delete finished session", "session_id", s.ID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AckResponse{State: string(coord.State())})
}

func (h *BookingFormHandler) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	if id == "" {
		http.Error(w, "missing sessionID", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.store.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load session", "session_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}
