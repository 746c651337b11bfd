package wire

import (
	"car-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// ==================== GATEWAY CALLBACK ROUTES ====================
	// Tidak pakai bearer auth: verify diamankan oleh HMAC signature,
	// failed callback untuk order asing adalah no-op

	// POST /api/payments/verify - Konfirmasi pembayaran dari gateway
	r.Post("/api/payments/verify", paymentHandler.VerifyPayment)

	// POST /api/payments/failed - Pembatalan setelah pembayaran gagal
	r.Post("/api/payments/failed", paymentHandler.PaymentFailed)
}
