package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
)

// Product represents a rentable item type. TotalQuantity is the physical
// unit count and the supply ceiling for overlapping reservations.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string                `gorm:"column:name;not null" json:"name"`
	Category      enums.ProductCategory `gorm:"column:category;type:product_category;not null" json:"category"`
	TotalQuantity int                   `gorm:"column:total_quantity;not null" json:"total_quantity"`
	PricePerDay   int                   `gorm:"column:price_per_day;not null" json:"price_per_day"`
	Description   string                `gorm:"column:description" json:"description"`
	ImageURL      string                `gorm:"column:image_url" json:"image_url"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
