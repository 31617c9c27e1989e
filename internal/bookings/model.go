package bookings

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("bookings: not found")
	ErrInvalidName = errors.New("bookings: client name is required")
	ErrNoPhone     = errors.New("bookings: phone number is required")
	ErrNoSchedule  = errors.New("bookings: consultation date and time are required")
)

// Booking is one recorded consultation booking, written after the webhook
// accepts a submission. The webhook sink stays the system of record; this
// table gives the operator a queryable copy.
type Booking struct {
	ID                  string    `json:"id"`
	ClientName          string    `json:"client_name"`
	Phone               string    `json:"phone"`
	PhoneConfirmed      bool      `json:"phone_confirmed"`
	ConsultationDate    time.Time `json:"consultation_date"`
	ConsultationTime    string    `json:"consultation_time"`
	ExistingProjectInfo string    `json:"existing_project_info"`
	JobDetails          string    `json:"job_details"`
	Source              string    `json:"source"`
	CreatedAt           time.Time `json:"created_at"`
}

// CreateBookingRequest carries the fields for a new booking record.
type CreateBookingRequest struct {
	ClientName          string
	Phone               string
	PhoneConfirmed      bool
	ConsultationDate    time.Time
	ConsultationTime    string
	ExistingProjectInfo string
	JobDetails          string
	Source              string
}

// Validate checks the structurally required fields.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrNoPhone
	}
	if r.ConsultationDate.IsZero() || r.ConsultationTime == "" {
		return ErrNoSchedule
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Limit  int
	Offset int
}
