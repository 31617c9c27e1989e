package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/traderbros/booking-platform/internal/http/handlers"
	httpmiddleware "github.com/traderbros/booking-platform/internal/http/middleware"
	"github.com/traderbros/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	BookingForm        *handlers.BookingFormHandler
	AdminBookings      *handlers.AdminBookingsHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Per-IP rate limit on the public form routes. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Booking form sessions (public, rate limited)
	if cfg.BookingForm != nil {
		r.Group(func(form chi.Router) {
			if cfg.RateLimitPerSecond > 0 {
				form.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
			}
			form.Route("/bookings/sessions", func(r chi.Router) {
				r.Post("/", cfg.BookingForm.CreateSession)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", cfg.BookingForm.GetSession)
					r.Post("/events", cfg.BookingForm.ApplyEvent)
					r.Post("/submit", cfg.BookingForm.Submit)
					r.Post("/ack", cfg.BookingForm.Acknowledge)
				})
			})
		})
	}

	// Admin routes (protected by JWT)
	if cfg.AdminBookings != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/bookings", cfg.AdminBookings.ListBookings)
		})
	}

	return r
}
