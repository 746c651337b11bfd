package wire

import (
	"car-booking/internal/adaptor"
	"car-booking/pkg/middleware"
	"car-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		// GET /api/bookings/preview - Read-only preview dengan platform fee
		r.Get("/api/bookings/preview", bookingHandler.PreviewBooking)

		// POST /api/bookings - Create pending booking + gateway order
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - Booking history milik user
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, "admin"))

		// GET /api/admin/bookings/{id} - Detail booking siapa pun
		r.Get("/{id}", bookingHandler.GetBookingByID)
	})
}
