// Package availability answers how many units of a product can still be
// rented over a date range. Only confirmed reservations consume supply;
// the reserved count for a range is the aggregate across every confirmed
// reservation overlapping it, so the answer is conservative for ranges
// longer than one day.
package availability

import (
	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
)

// Result is the availability verdict for one product over a range.
type Result struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	Requested        int       `json:"requested"`
	TotalQuantity    int       `json:"total_quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	MaxAvailable     int       `json:"max_available"`
	Available        bool      `json:"available"`
	Message          string    `json:"message,omitempty"`
}

// MultiResult aggregates per-item verdicts. Available is true only when
// every item can be satisfied.
type MultiResult struct {
	Available bool     `json:"available"`
	Items     []Result `json:"items"`
}

// DayAvailability is the supply picture for a single calendar day.
type DayAvailability struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}

// Period is a bookable window found by the next-period search.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ProductOccupancy summarizes utilization of one product over a range.
type ProductOccupancy struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	TotalQuantity    int       `json:"total_quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	OccupancyPercent int       `json:"occupancy_percent"`
}

// reservedInRange sums the quantity of productID held by reservations
// overlapping [start, end]. Callers pass pre-filtered confirmed rows.
func reservedInRange(reservations []models.Reservation, productID uuid.UUID, start, end string) int {
	total := 0
	for _, r := range reservations {
		if r.StartDate <= end && r.EndDate >= start {
			total += r.QuantityOf(productID)
		}
	}
	return total
}
