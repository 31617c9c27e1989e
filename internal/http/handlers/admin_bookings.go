package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/traderbros/booking-platform/internal/bookings"
	"github.com/traderbros/booking-platform/pkg/logging"
)

// AdminBookingsHandler exposes the recorded-bookings list to the operator
// dashboard.
type AdminBookingsHandler struct {
	bookings *bookings.Service
	logger   *logging.Logger
}

// NewAdminBookingsHandler creates a new admin bookings handler.
func NewAdminBookingsHandler(svc *bookings.Service, logger *logging.Logger) *AdminBookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminBookingsHandler{bookings: svc, logger: logger}
}

// BookingsListResponse is a page of recorded bookings.
type BookingsListResponse struct {
	Bookings []*bookings.Booking `json:"bookings"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
}

// ListBookings returns recorded bookings, newest first.
// GET /admin/bookings
func (h *AdminBookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	list, err := h.bookings.List(r.Context(), bookings.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*bookings.Booking{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BookingsListResponse{
		Bookings: list,
		Limit:    limit,
		Offset:   offset,
	})
}
