package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores bookings in the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// newPostgresRepositoryWithQuerier allows injecting mocks for tests.
func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO bookings (id, client_name, phone, phone_confirmed, consultation_date, consultation_time, existing_project_info, job_details, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.ClientName,
		req.Phone,
		req.PhoneConfirmed,
		req.ConsultationDate,
		req.ConsultationTime,
		req.ExistingProjectInfo,
		req.JobDetails,
		req.Source,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}

	return &Booking{
		ID:                  id.String(),
		ClientName:          req.ClientName,
		Phone:               req.Phone,
		PhoneConfirmed:      req.PhoneConfirmed,
		ConsultationDate:    req.ConsultationDate,
		ConsultationTime:    req.ConsultationTime,
		ExistingProjectInfo: req.ExistingProjectInfo,
		JobDetails:          req.JobDetails,
		Source:              req.Source,
		CreatedAt:           createdAt,
	}, nil
}

// GetByID fetches a booking.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT id, client_name, phone, phone_confirmed, consultation_date, consultation_time, existing_project_info, job_details, source, created_at
		FROM bookings
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	var b Booking
	if err := row.Scan(
		&b.ID,
		&b.ClientName,
		&b.Phone,
		&b.PhoneConfirmed,
		&b.ConsultationDate,
		&b.ConsultationTime,
		&b.ExistingProjectInfo,
		&b.JobDetails,
		&b.Source,
		&b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return &b, nil
}

// List returns bookings newest-first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, client_name, phone, phone_confirmed, consultation_date, consultation_time, existing_project_info, job_details, source, created_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID,
			&b.ClientName,
			&b.Phone,
			&b.PhoneConfirmed,
			&b.ConsultationDate,
			&b.ConsultationTime,
			&b.ExistingProjectInfo,
			&b.JobDetails,
			&b.Source,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("bookings: scan failed: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: rows failed: %w", err)
	}
	return out, nil
}
