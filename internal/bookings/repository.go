package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository persists booking records.
type Repository interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]*Booking, error)
}

// InMemoryRepository backs tests and deployments without a database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{bookings: make(map[string]*Booking)}
}

// Create stores a new booking record.
func (r *InMemoryRepository) Create(_ context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	b := &Booking{
		ID:                  uuid.New().String(),
		ClientName:          req.ClientName,
		Phone:               req.Phone,
		PhoneConfirmed:      req.PhoneConfirmed,
		ConsultationDate:    req.ConsultationDate,
		ConsultationTime:    req.ConsultationTime,
		ExistingProjectInfo: req.ExistingProjectInfo,
		JobDetails:          req.JobDetails,
		Source:              req.Source,
		CreatedAt:           time.Now().UTC(),
	}
	r.mu.Lock()
	r.bookings[b.ID] = b
	r.mu.Unlock()
	out := *b
	return &out, nil
}

// GetByID fetches one booking.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

// List returns bookings newest-first.
func (r *InMemoryRepository) List(_ context.Context, filter ListFilter) ([]*Booking, error) {
	r.mu.RLock()
	all := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out := *b
		all = append(all, &out)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*Booking{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
