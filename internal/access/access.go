package access

import (
	"car-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor adalah identitas caller hasil resolve bearer token
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

// Policy memusatkan cek capability (actor, resource) -> bool,
// menggantikan role check yang tersebar per handler
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// CanViewBooking: pemilik booking atau admin
func (p *Policy) CanViewBooking(actor Actor, booking *entity.Booking) bool {
	if booking == nil {
		return false
	}
	if actor.Role == entity.RoleAdmin {
		return true
	}
	return actor.ID == booking.UserID
}

// CanManageBookings: akses lintas user, admin only
func (p *Policy) CanManageBookings(actor Actor) bool {
	return actor.Role == entity.RoleAdmin
}

// CanBook: dealer tidak bisa booking mobil lewat platform
func (p *Policy) CanBook(actor Actor) bool {
	return actor.Role == entity.RoleCustomer || actor.Role == entity.RoleAdmin
}
