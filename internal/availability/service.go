package availability

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dcontreras/mueblesrent-backend/internal/calendar"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
	"github.com/dcontreras/mueblesrent-backend/pkg/metrics"
)

// Service answers availability questions against confirmed reservations.
type Service interface {
	Check(ctx context.Context, input CheckInput) (*Result, error)
	CheckAll(ctx context.Context, input MultiCheckInput) (*MultiResult, error)
	ByDay(ctx context.Context, productID uuid.UUID, start, end string) (iter.Seq[DayAvailability], error)
	FindNextPeriod(ctx context.Context, input NextPeriodInput) (*Period, error)
	Occupancy(ctx context.Context, start, end string) ([]ProductOccupancy, error)
}

// CheckInput is one product/quantity probe over a date range.
type CheckInput struct {
	ProductID uuid.UUID
	Quantity  int
	StartDate string
	EndDate   string
}

// MultiCheckInput probes several items over a shared date range.
type MultiCheckInput struct {
	Items     []CheckInput
	StartDate string
	EndDate   string
}

// NextPeriodInput describes the window search for the earliest bookable period.
type NextPeriodInput struct {
	ProductID uuid.UUID
	Quantity  int
	Days      int
	From      string
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

type reservationReader interface {
	ListConfirmedOverlapping(ctx context.Context, start, end string) ([]models.Reservation, error)
}

// service implements the availability service.
type service struct {
	products     productReader
	reservations reservationReader
	bookMetrics  *metrics.BookingMetrics
	horizonDays  int
}

// NewService constructs an availability service instance.
func NewService(products productReader, reservations reservationReader, bookMetrics *metrics.BookingMetrics, cfg config.BookingConfig) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if reservations == nil {
		return nil, fmt.Errorf("reservation reader required")
	}
	horizon := cfg.SearchHorizonDays
	if horizon <= 0 {
		return nil, fmt.Errorf("search horizon days must be positive, got %d", horizon)
	}
	return &service{
		products:     products,
		reservations: reservations,
		bookMetrics:  bookMetrics,
		horizonDays:  horizon,
	}, nil
}

// Check reports whether the requested quantity of one product fits in the range.
func (s *service) Check(ctx context.Context, input CheckInput) (*Result, error) {
	started := time.Now()
	defer func() { s.bookMetrics.ObserveCheck("check", time.Since(started)) }()

	if err := calendar.ValidateRange(input.StartDate, input.EndDate, calendar.Today()); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.reservations.ListConfirmedOverlapping(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading overlapping reservations")
	}

	return verdict(*product, overlapping, input), nil
}

// CheckAll evaluates every item against the shared range. Each line is
// evaluated independently, so duplicate product ids do not pool their
// requested quantities.
func (s *service) CheckAll(ctx context.Context, input MultiCheckInput) (*MultiResult, error) {
	started := time.Now()
	defer func() { s.bookMetrics.ObserveCheck("check_all", time.Since(started)) }()

	if err := calendar.ValidateRange(input.StartDate, input.EndDate, calendar.Today()); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing error
	for _, item := range input.Items {
		if _, ok := byID[item.ProductID]; !ok {
			missing = multierr.Append(missing, fmt.Errorf("product %s not found", item.ProductID))
		}
	}
	if missing != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, missing, "unknown products in availability check")
	}

	overlapping, err := s.reservations.ListConfirmedOverlapping(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading overlapping reservations")
	}

	result := &MultiResult{Available: true, Items: make([]Result, 0, len(input.Items))}
	for _, item := range input.Items {
		item.StartDate = input.StartDate
		item.EndDate = input.EndDate
		r := verdict(byID[item.ProductID], overlapping, item)
		if !r.Available {
			result.Available = false
		}
		result.Items = append(result.Items, *r)
	}
	return result, nil
}

// ByDay returns a restartable day-by-day supply walk over the range.
// Reservations are loaded once; the walk itself allocates lazily.
func (s *service) ByDay(ctx context.Context, productID uuid.UUID, start, end string) (iter.Seq[DayAvailability], error) {
	if err := calendar.ValidateRange(start, end, ""); err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	overlapping, err := s.reservations.ListConfirmedOverlapping(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading overlapping reservations")
	}

	return func(yield func(DayAvailability) bool) {
		for day := range calendar.Days(start, end) {
			reserved := reservedInRange(overlapping, productID, day, day)
			if !yield(DayAvailability{
				Date:      day,
				Total:     product.TotalQuantity,
				Reserved:  reserved,
				Available: product.TotalQuantity - reserved,
			}) {
				return
			}
		}
	}, nil
}

// FindNextPeriod scans forward from the given date for the earliest
// window of the requested length with enough supply on every day. Returns
// nil when no window exists inside the search horizon.
func (s *service) FindNextPeriod(ctx context.Context, input NextPeriodInput) (*Period, error) {
	started := time.Now()
	defer func() { s.bookMetrics.ObserveCheck("next_period", time.Since(started)) }()

	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Days < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days must be at least 1")
	}
	from := input.From
	if from == "" {
		from = calendar.Today()
	}
	if _, err := calendar.Parse(from); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidRange, err, "from date must be YYYY-MM-DD")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	// Only windows fully contained in the horizon qualify, so the last
	// candidate start is horizon minus the window length.
	if input.Days > s.horizonDays {
		return nil, nil
	}

	// One load covers every candidate window.
	scanEnd, err := calendar.AddDays(from, s.horizonDays-1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidRange, err, "computing scan window")
	}
	overlapping, err := s.reservations.ListConfirmedOverlapping(ctx, from, scanEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading overlapping reservations")
	}

	for offset := 0; offset <= s.horizonDays-input.Days; offset++ {
		windowStart, err := calendar.AddDays(from, offset)
		if err != nil {
			return nil, err
		}
		windowEnd, err := calendar.AddDays(windowStart, input.Days-1)
		if err != nil {
			return nil, err
		}
		if windowFits(overlapping, product, input.ProductID, input.Quantity, windowStart, windowEnd) {
			return &Period{StartDate: windowStart, EndDate: windowEnd}, nil
		}
	}
	return nil, nil
}

// Occupancy summarizes per-product utilization over the range.
func (s *service) Occupancy(ctx context.Context, start, end string) ([]ProductOccupancy, error) {
	if err := calendar.ValidateRange(start, end, ""); err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}
	overlapping, err := s.reservations.ListConfirmedOverlapping(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading overlapping reservations")
	}

	summary := make([]ProductOccupancy, 0, len(products))
	for _, p := range products {
		reserved := reservedInRange(overlapping, p.ID, start, end)
		occ := ProductOccupancy{
			ProductID:        p.ID,
			ProductName:      p.Name,
			TotalQuantity:    p.TotalQuantity,
			ReservedQuantity: reserved,
		}
		if p.TotalQuantity > 0 {
			occ.OccupancyPercent = reserved * 100 / p.TotalQuantity
		}
		summary = append(summary, occ)
	}
	return summary, nil
}

// verdict builds the availability result for one product against the
// already-loaded overlapping reservations.
func verdict(product models.Product, overlapping []models.Reservation, input CheckInput) *Result {
	reserved := reservedInRange(overlapping, product.ID, input.StartDate, input.EndDate)
	maxAvailable := product.TotalQuantity - reserved

	r := &Result{
		ProductID:        product.ID,
		ProductName:      product.Name,
		Requested:        input.Quantity,
		TotalQuantity:    product.TotalQuantity,
		ReservedQuantity: reserved,
		MaxAvailable:     maxAvailable,
		Available:        maxAvailable >= input.Quantity,
	}
	if r.Available {
		r.Message = "Disponible"
	} else {
		r.Message = fmt.Sprintf("Solo hay %d unidades disponibles para las fechas seleccionadas", maxAvailable)
	}
	return r
}

// windowFits checks that every day of the candidate window keeps at least
// the requested quantity free.
func windowFits(overlapping []models.Reservation, product *models.Product, productID uuid.UUID, quantity int, start, end string) bool {
	for day := range calendar.Days(start, end) {
		if product.TotalQuantity-reservedInRange(overlapping, productID, day, day) < quantity {
			return false
		}
	}
	return true
}
