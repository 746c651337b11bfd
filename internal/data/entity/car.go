package entity

import (
	"strings"

	"github.com/google/uuid"
)

type Car struct {
	Base
	DealerID    uuid.UUID `db:"dealer_id"`
	Make        string    `db:"make"`
	Model       string    `db:"model"`
	Variant     *string   `db:"variant"`
	Price       float64   `db:"price"`
	IsAvailable bool      `db:"is_available"`
}

// DisplayName gabungan make/model/variant untuk notifikasi
func (c *Car) DisplayName() string {
	parts := []string{c.Make, c.Model}
	if c.Variant != nil && *c.Variant != "" {
		parts = append(parts, *c.Variant)
	}
	return strings.Join(parts, " ")
}
