package submission

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/traderbros/booking-platform/internal/form"
	"github.com/traderbros/booking-platform/internal/observability/metrics"
	"github.com/traderbros/booking-platform/pkg/logging"
)

var submitTracer = otel.Tracer("bookingform.internal.submission")

// State is the coordinator's position in the submit lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Outcome classifies one Submit call for callers and metrics.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeRejected Outcome = "rejected" // gate closed, nothing sent
	OutcomeDropped  Outcome = "dropped"  // duplicate while submitting
)

// genericFailureNotice is all the user sees on any delivery failure.
const genericFailureNotice = "Something went wrong sending your booking. Please try again."

// Result is what one Submit call produced.
type Result struct {
	Outcome      Outcome
	Confirmation *Confirmation // set on success
	Notice       string        // generic, set on failure
}

// Coordinator drives Idle -> Submitting -> {Success, Failed} for one form
// session. While Submitting, further submits are dropped; the boolean state
// check under the mutex is the system's only concurrency control.
type Coordinator struct {
	client  *Client
	source  string
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	now     func() time.Time

	mu    sync.Mutex
	state State
}

// NewCoordinator builds a coordinator delivering through client.
func NewCoordinator(client *Client, source string, logger *logging.Logger, m *metrics.BookingMetrics) *Coordinator {
	if client == nil {
		panic("submission: client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		client:  client,
		source:  source,
		logger:  logger,
		metrics: m,
		now:     time.Now,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one attempt against the live snapshot. The gate is
// re-checked here: a closed gate is a no-op, as is a submit arriving while
// another is in flight. Exactly one webhook request leaves per accepted
// call.
func (c *Coordinator) Submit(ctx context.Context, snap form.Snapshot, userAgent string) Result {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		c.metrics.ObserveSubmission(string(OutcomeDropped))
		return Result{Outcome: OutcomeDropped}
	}
	if !form.Valid(snap) {
		c.mu.Unlock()
		c.metrics.ObserveSubmission(string(OutcomeRejected))
		return Result{Outcome: OutcomeRejected}
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	ctx, span := submitTracer.Start(ctx, "submission.submit")
	defer span.End()

	now := c.now()
	payload, err := BuildPayload(snap, now, c.source, userAgent)
	if err != nil {
		// Gate was open yet the snapshot is incomplete: a defect, but the
		// user still just sees the generic notice and may retry.
		c.logger.Error("payload build failed on open gate", "error", err)
		span.RecordError(err)
		return c.fail()
	}
	span.SetAttributes(
		attribute.String("booking.date", payload.ConsultationDate),
		attribute.String("booking.time", payload.ConsultationTime),
	)

	start := now
	err = c.client.Deliver(ctx, payload)
	c.metrics.ObserveWebhookLatency(time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("booking submission failed", "error", err)
		span.RecordError(err)
		return c.fail()
	}

	c.mu.Lock()
	c.state = StateSuccess
	c.mu.Unlock()
	c.metrics.ObserveSubmission(string(OutcomeSuccess))
	c.logger.Info("booking submitted",
		"client", payload.ClientName,
		"date", payload.ConsultationDate,
		"time", payload.ConsultationTime,
	)
	return Result{
		Outcome:      OutcomeSuccess,
		Confirmation: buildConfirmation(payload, *snap.SelectedDate, c.now()),
	}
}

func (c *Coordinator) fail() Result {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()
	c.metrics.ObserveSubmission(string(OutcomeFailed))
	return Result{Outcome: OutcomeFailed, Notice: genericFailureNotice}
}

// Acknowledge returns the coordinator to Idle from either terminal state,
// re-arming submission. Acknowledging while Submitting or Idle is a no-op.
func (c *Coordinator) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSuccess || c.state == StateFailed {
		c.state = StateIdle
	}
}
