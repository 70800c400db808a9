package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/internal/calendar"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

// Service exposes quote generation for prospective rentals.
type Service interface {
	GenerateQuote(ctx context.Context, input QuoteInput) (*Quote, error)
}

// QuoteItemInput is one requested product/quantity pair.
type QuoteItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// QuoteInput holds the validated payload to price a prospective rental.
type QuoteInput struct {
	StartDate string
	EndDate   string
	Items     []QuoteItemInput
}

// Quote is a priced rental proposal. It carries no hold on inventory.
type Quote struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Breakdown
	FormattedTotal   string `json:"formatted_total"`
	FormattedDeposit string `json:"formatted_deposit"`
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// service implements the pricing service.
type service struct {
	products       productLoader
	depositPercent int
}

// NewService constructs a pricing service instance.
func NewService(products productLoader, cfg config.BookingConfig) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if cfg.DepositPercent < 0 || cfg.DepositPercent > 100 {
		return nil, fmt.Errorf("deposit percent must be within 0..100, got %d", cfg.DepositPercent)
	}
	return &service{products: products, depositPercent: cfg.DepositPercent}, nil
}

// GenerateQuote prices the requested items over the date range. Duplicate
// product ids are priced independently per line.
func (s *service) GenerateQuote(ctx context.Context, input QuoteInput) (*Quote, error) {
	if err := calendar.ValidateRange(input.StartDate, input.EndDate, calendar.Today()); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
	}

	days, err := calendar.InclusiveDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidRange, err, "computing rental length")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
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

	lines := make([]LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", item.ProductID))
		}
		lines = append(lines, LineItem{Product: product, Quantity: item.Quantity})
	}

	breakdown, err := ReservationPrice(lines, days, s.depositPercent)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "pricing reservation")
	}

	return &Quote{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Breakdown:        breakdown,
		FormattedTotal:   FormatCLP(breakdown.Total),
		FormattedDeposit: FormatCLP(breakdown.Deposit),
	}, nil
}
