package access

import (
	"testing"

	"car-booking/internal/data/entity"

	"github.com/google/uuid"
)

func TestCanViewBooking(t *testing.T) {
	policy := NewPolicy()
	ownerID := uuid.New()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		UserID: ownerID,
	}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owner", Actor{ID: ownerID, Role: entity.RoleCustomer}, true},
		{"other customer", Actor{ID: uuid.New(), Role: entity.RoleCustomer}, false},
		{"dealer", Actor{ID: uuid.New(), Role: entity.RoleDealer}, false},
		{"admin", Actor{ID: uuid.New(), Role: entity.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.CanViewBooking(tt.actor, booking); got != tt.want {
				t.Errorf("CanViewBooking(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if policy.CanViewBooking(Actor{ID: ownerID, Role: entity.RoleAdmin}, nil) {
		t.Error("nil booking must never be viewable")
	}
}

func TestCanBook(t *testing.T) {
	policy := NewPolicy()

	tests := []struct {
		role entity.UserRole
		want bool
	}{
		{entity.RoleCustomer, true},
		{entity.RoleAdmin, true},
		{entity.RoleDealer, false},
	}

	for _, tt := range tests {
		actor := Actor{ID: uuid.New(), Role: tt.role}
		if got := policy.CanBook(actor); got != tt.want {
			t.Errorf("CanBook(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCanManageBookings(t *testing.T) {
	policy := NewPolicy()

	if !policy.CanManageBookings(Actor{ID: uuid.New(), Role: entity.RoleAdmin}) {
		t.Error("admin should manage bookings")
	}
	if policy.CanManageBookings(Actor{ID: uuid.New(), Role: entity.RoleCustomer}) {
		t.Error("customer should not manage bookings")
	}
	if policy.CanManageBookings(Actor{ID: uuid.New(), Role: entity.RoleDealer}) {
		t.Error("dealer should not manage bookings")
	}
}
