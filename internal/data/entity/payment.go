package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Payment struct {
	Base
	BookingID       uuid.UUID     `db:"booking_id"`
	PaymentMethod   string        `db:"payment_method"`
	Amount          float64       `db:"amount"`
	RazorpayOrderID string        `db:"razorpay_order_id"`
	TransactionID   *string       `db:"transaction_id"`
	Status          PaymentStatus `db:"payment_status"`
}
