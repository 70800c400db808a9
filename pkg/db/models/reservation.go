package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
)

// Reservation holds quantities of products over an inclusive date range.
// Dates are ISO calendar days (YYYY-MM-DD); lexicographic order equals
// chronological order. TotalAmount is fixed at creation time.
type Reservation struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID    uuid.UUID               `gorm:"column:client_id;type:uuid;not null" json:"client_id"`
	StartDate   string                  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate     string                  `gorm:"column:end_date;type:date;not null" json:"end_date"`
	Status      enums.ReservationStatus `gorm:"column:status;type:reservation_status;not null" json:"status"`
	TotalAmount int                     `gorm:"column:total_amount;not null" json:"total_amount"`
	Items       []ReservationItem       `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// QuantityOf sums the reserved quantity for the given product across line items.
func (r Reservation) QuantityOf(productID uuid.UUID) int {
	total := 0
	for _, item := range r.Items {
		if item.ProductID == productID {
			total += item.Quantity
		}
	}
	return total
}
