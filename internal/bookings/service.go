package bookings

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/traderbros/booking-platform/pkg/logging"
)

var bookingsTracer = otel.Tracer("bookingform.internal.bookings")

// Service records bookings once the webhook has accepted a submission.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs a bookings service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Record writes one booking row.
func (s *Service) Record(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.record")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.date", req.ConsultationDate.Format("2006-01-02")),
		attribute.String("booking.time", req.ConsultationTime),
	)

	b, err := s.repo.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.Info("booking recorded", "booking_id", b.ID, "client", b.ClientName)
	return b, nil
}

// List returns recorded bookings newest-first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	return s.repo.List(ctx, filter)
}
