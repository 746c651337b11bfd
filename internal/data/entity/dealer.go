package entity

import (
	"github.com/google/uuid"
)

type Dealer struct {
	Base
	UserID       uuid.UUID `db:"user_id"`
	BusinessName string    `db:"business_name"`
	City         string    `db:"city"`
}
