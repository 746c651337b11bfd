package request

type BookingPreviewRequest struct {
	CarID       string `json:"carId" validate:"required,uuid4"`
	BookingDate string `json:"booking_date" validate:"required"`
}

type CreateBookingRequest struct {
	CarID       string `json:"carId" validate:"required,uuid4"`
	BookingDate string `json:"booking_date" validate:"required"`
}
