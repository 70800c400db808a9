package models

import "github.com/google/uuid"

// ReservationItem is a single product/quantity line inside a reservation.
// Position preserves the order the caller submitted the items in.
type ReservationItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReservationID uuid.UUID `gorm:"column:reservation_id;type:uuid;not null" json:"reservation_id"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity      int       `gorm:"column:quantity;not null" json:"quantity"`
	Position      int       `gorm:"column:position;not null;default:0" json:"position"`
}
