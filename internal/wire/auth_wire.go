package wire

import (
	"car-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/register - Create account (customer/dealer)
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - Issue bearer token
	r.Post("/api/login", authHandler.Login)
}
