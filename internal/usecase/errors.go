package usecase

import (
	"errors"
)

// Error taxonomy untuk booking/payment flow; handler memetakan
// sentinel ini ke HTTP status
var (
	ErrInvalidDate       = errors.New("booking_date must be in YYYY-MM-DD format and from tomorrow onwards")
	ErrCarUnavailable    = errors.New("car not available")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("access denied")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")
)
