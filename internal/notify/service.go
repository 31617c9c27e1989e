package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/traderbros/booking-platform/internal/bookings"
	"github.com/traderbros/booking-platform/pkg/logging"
)

// Service sends the operator a heads-up when a booking lands.
type Service struct {
	email  EmailSender
	to     string
	toName string
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender or empty
// recipient disables notifications without erroring.
func NewService(email EmailSender, to, toName string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, to: to, toName: toName, logger: logger}
}

// NotifyBookingRecorded emails the operator about a new booking. Failures
// are logged and returned but never block the client's confirmation.
func (s *Service) NotifyBookingRecorded(ctx context.Context, b *bookings.Booking) error {
	if s.email == nil || s.to == "" {
		s.logger.Debug("notify: email not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("New consultation booking: %s on %s at %s",
		b.ClientName, b.ConsultationDate.Format("Mon 2 Jan"), b.ConsultationTime)

	var body strings.Builder
	fmt.Fprintf(&body, "New consultation booked.\n\n")
	fmt.Fprintf(&body, "Name: %s\n", b.ClientName)
	fmt.Fprintf(&body, "Phone: %s", b.Phone)
	if !b.PhoneConfirmed {
		body.WriteString(" (new number, not the one on file)")
	}
	fmt.Fprintf(&body, "\nDate: %s\n", b.ConsultationDate.Format("Monday, 2 January 2006"))
	fmt.Fprintf(&body, "Time: %s\n", b.ConsultationTime)
	if b.ExistingProjectInfo != "" {
		fmt.Fprintf(&body, "\nExisting project info:\n%s\n", b.ExistingProjectInfo)
	}
	if b.JobDetails != "" {
		fmt.Fprintf(&body, "\nAdditional job details:\n%s\n", b.JobDetails)
	}

	msg := EmailMessage{
		To:      s.to,
		ToName:  s.toName,
		Subject: subject,
		Body:    body.String(),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: booking email failed", "error", err, "booking_id", b.ID)
		return err
	}
	return nil
}
