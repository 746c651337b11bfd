package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"car-booking/internal/dto/request"
	"car-booking/internal/usecase"
	"car-booking/pkg/utils"

	"go.uber.org/zap"
)

// PaymentHandler menangani callback dari payment gateway. Caller
// sebenarnya adalah gateway / client SDK, jadi response selalu
// machine-readable, tidak ada redirect.
type PaymentHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.BookingService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// VerifyPayment handles POST /api/payments/verify (gateway callback)
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, result.Message, result)
}

// PaymentFailed handles POST /api/payments/failed (gateway callback)
func (h *PaymentHandler) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentFailedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.RazorpayOrderID == "" {
		utils.ResponseBadRequest(w, "Order ID required", nil)
		return
	}

	if err := h.service.PaymentFailed(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "payment failed callback")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError memetakan error callback ke HTTP status
func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSignatureMismatch):
		h.log.Warn(operation+" failed - signature mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrPaymentNotFound):
		h.log.Warn(operation+" failed - payment not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
