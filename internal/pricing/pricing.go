// Package pricing computes rental totals in whole CLP with tiered
// volume discounts based on rental length.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
)

// Discount tiers by rental length in days. Longer rentals win.
const (
	monthTierDays = 30
	fortnightDays = 14
	weekTierDays  = 7

	monthDiscountPercent     = 20
	fortnightDiscountPercent = 15
	weekDiscountPercent      = 10
)

// VolumeDiscountPercent returns the discount percentage for a rental length.
func VolumeDiscountPercent(days int) int {
	switch {
	case days >= monthTierDays:
		return monthDiscountPercent
	case days >= fortnightDays:
		return fortnightDiscountPercent
	case days >= weekTierDays:
		return weekDiscountPercent
	default:
		return 0
	}
}

// LineItem pairs a product with the requested unit count.
type LineItem struct {
	Product  models.Product
	Quantity int
}

// ItemPrice is the per-line breakdown of a quote.
type ItemPrice struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	PricePerDay   int    `json:"price_per_day"`
	DailySubtotal int    `json:"daily_subtotal"`
	Total         int    `json:"total"`
}

// Breakdown is the full price decomposition for a reservation.
type Breakdown struct {
	Days            int         `json:"days"`
	Items           []ItemPrice `json:"items"`
	Subtotal        int         `json:"subtotal"`
	DiscountPercent int         `json:"discount_percent"`
	DiscountAmount  int         `json:"discount_amount"`
	Total           int         `json:"total"`
	Deposit         int         `json:"deposit"`
	Remaining       int         `json:"remaining"`
}

// ItemPriceFor prices one line: the daily subtotal scales with quantity,
// the line total with rental length.
func ItemPriceFor(p models.Product, quantity, days int) ItemPrice {
	daily := p.PricePerDay * quantity
	return ItemPrice{
		ProductID:     p.ID.String(),
		Name:          p.Name,
		Quantity:      quantity,
		PricePerDay:   p.PricePerDay,
		DailySubtotal: daily,
		Total:         daily * days,
	}
}

// ReservationPrice prices a full reservation. The volume discount applies
// to the combined subtotal, and discount and deposit amounts round
// half-up to whole pesos.
func ReservationPrice(items []LineItem, days, depositPercent int) (Breakdown, error) {
	if days < 1 {
		return Breakdown{}, fmt.Errorf("days must be at least 1, got %d", days)
	}
	if len(items) == 0 {
		return Breakdown{}, fmt.Errorf("at least one line item is required")
	}

	b := Breakdown{
		Days:  days,
		Items: make([]ItemPrice, 0, len(items)),
	}
	for _, li := range items {
		if li.Quantity < 1 {
			return Breakdown{}, fmt.Errorf("quantity must be at least 1 for product %s", li.Product.ID)
		}
		price := ItemPriceFor(li.Product, li.Quantity, days)
		b.Items = append(b.Items, price)
		b.Subtotal += price.Total
	}

	b.DiscountPercent = VolumeDiscountPercent(days)
	b.DiscountAmount = percentOf(b.Subtotal, b.DiscountPercent)
	b.Total = b.Subtotal - b.DiscountAmount
	b.Deposit = percentOf(b.Total, depositPercent)
	b.Remaining = b.Total - b.Deposit
	return b, nil
}

// percentOf computes pct% of amount rounded half away from zero.
func percentOf(amount, pct int) int {
	if pct <= 0 {
		return 0
	}
	v := decimal.NewFromInt(int64(amount)).
		Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return int(v.IntPart())
}
