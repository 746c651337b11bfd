package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking dan Payment-nya selalu bertransisi bersama:
// pending/pending -> confirmed/paid atau cancelled/failed, tidak ada
// kombinasi lain yang reachable dari flow ini.
type Booking struct {
	Base
	UserID                 uuid.UUID     `db:"user_id"`
	CarID                  uuid.UUID     `db:"car_id"`
	DealerID               uuid.UUID     `db:"dealer_id"`
	BookingDate            time.Time     `db:"booking_date"`
	PlatformFee            float64       `db:"platform_fee"`
	PaymentStatus          PaymentStatus `db:"payment_status"`
	BookingStatus          BookingStatus `db:"booking_status"`
	DealerPaymentStatus    PaymentStatus `db:"dealer_payment_status"`
	DealerPaymentReference *string       `db:"dealer_payment_reference"`
}

// BookingNotificationInfo adalah denormalized view untuk email
// konfirmasi setelah payment verified
type BookingNotificationInfo struct {
	CustomerName  string
	CustomerEmail string
	DealerName    string
	DealerEmail   string
	CarName       string
	BookingDate   time.Time
}
