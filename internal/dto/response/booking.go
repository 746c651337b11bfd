package response

import (
	"car-booking/internal/data/entity"
	"time"
)

type CarSummary struct {
	ID      string  `json:"id"`
	Make    string  `json:"make"`
	Model   string  `json:"model"`
	Variant *string `json:"variant,omitempty"`
	Price   float64 `json:"price"` // display only, dibayar ke dealer
}

type DealerSummary struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	City         string `json:"city"`
}

type BookingPreviewResponse struct {
	Car         CarSummary    `json:"car"`
	Dealer      DealerSummary `json:"dealer"`
	BookingDate string        `json:"booking_date"`
	PlatformFee float64       `json:"platform_fee"`
	PayableNow  float64       `json:"payable_now"`
	Note        string        `json:"note"`
}

// GatewayOrder adalah order descriptor yang dipakai client untuk
// menyelesaikan pembayaran di sisi gateway
type GatewayOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	KeyID    string `json:"key"`
}

type CreateBookingResponse struct {
	BookingID string       `json:"booking_id"`
	Razorpay  GatewayOrder `json:"razorpay"`
}

type VerifyPaymentResponse struct {
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

type BookingResponse struct {
	ID                  string               `json:"id"`
	UserID              string               `json:"user_id"`
	CarID               string               `json:"car_id"`
	DealerID            string               `json:"dealer_id"`
	BookingDate         string               `json:"booking_date"`
	PlatformFee         float64              `json:"platform_fee"`
	PaymentStatus       entity.PaymentStatus `json:"payment_status"`
	BookingStatus       entity.BookingStatus `json:"booking_status"`
	DealerPaymentStatus entity.PaymentStatus `json:"dealer_payment_status"`
	Payment             *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	PaymentMethod string               `json:"payment_method"`
	Amount        float64              `json:"amount"`
	OrderID       string               `json:"order_id"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	Status        entity.PaymentStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, payment *entity.Payment) BookingResponse {
	resp := BookingResponse{
		ID:                  booking.ID.String(),
		UserID:              booking.UserID.String(),
		CarID:               booking.CarID.String(),
		DealerID:            booking.DealerID.String(),
		BookingDate:         booking.BookingDate.Format("2006-01-02"),
		PlatformFee:         booking.PlatformFee,
		PaymentStatus:       booking.PaymentStatus,
		BookingStatus:       booking.BookingStatus,
		DealerPaymentStatus: booking.DealerPaymentStatus,
		CreatedAt:           booking.CreatedAt,
	}

	if payment != nil {
		paymentResp := PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return resp
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		PaymentMethod: payment.PaymentMethod,
		Amount:        payment.Amount,
		OrderID:       payment.RazorpayOrderID,
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		CreatedAt:     payment.CreatedAt,
	}
}
