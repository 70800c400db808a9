package reservation

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dcontreras/mueblesrent-backend/internal/calendar"
	"github.com/dcontreras/mueblesrent-backend/internal/pricing"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
	"github.com/dcontreras/mueblesrent-backend/pkg/metrics"
)

// Service exposes the booking state machine. CreateReservation is the
// consistency-critical path: availability is re-validated inside the same
// transaction that writes the reservation, under row locks on the
// affected products, so two concurrent bookings contending for the last
// units cannot both commit.
type Service interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, status enums.ReservationStatus) (*models.Reservation, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error)
	GetReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter ListFilter) ([]models.Reservation, error)
}

// ItemInput is one requested product/quantity line.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateReservationInput holds the validated payload to book a rental.
// Status defaults to confirmed; pending is allowed for flows that defer
// confirmation.
type CreateReservationInput struct {
	ClientID  uuid.UUID
	StartDate string
	EndDate   string
	Status    enums.ReservationStatus
	Items     []ItemInput
}

type clientReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// service implements the reservation service.
type service struct {
	repo           *Repository
	dbClient       *db.Client
	clients        clientReader
	bookMetrics    *metrics.BookingMetrics
	depositPercent int
}

// NewService constructs a reservation service instance.
func NewService(repo *Repository, dbClient *db.Client, clients clientReader, bookMetrics *metrics.BookingMetrics, cfg config.BookingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reservation repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client reader required")
	}
	return &service{
		repo:           repo,
		dbClient:       dbClient,
		clients:        clients,
		bookMetrics:    bookMetrics,
		depositPercent: cfg.DepositPercent,
	}, nil
}

// CreateReservation validates, prices and commits a booking atomically.
// Nothing is written when any line item lacks availability.
func (s *service) CreateReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	created, err := s.createReservation(ctx, input)
	s.recordOutcome(created, err)
	return created, err
}

func (s *service) createReservation(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
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

	status := input.Status
	if status == "" {
		status = enums.ReservationStatusConfirmed
	}
	if status != enums.ReservationStatusPending && status != enums.ReservationStatusConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid initial status %q", status))
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	days, err := calendar.InclusiveDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidRange, err, "computing rental length")
	}

	var created *models.Reservation
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		products, err := txRepo.LockProducts(ctx, distinctSortedIDs(input.Items))
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		for _, item := range input.Items {
			if _, ok := byID[item.ProductID]; !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", item.ProductID))
			}
		}

		overlapping, err := txRepo.ListConfirmedOverlapping(ctx, input.StartDate, input.EndDate)
		if err != nil {
			return err
		}

		lines := make([]pricing.LineItem, 0, len(input.Items))
		for _, item := range input.Items {
			product := byID[item.ProductID]
			reserved := 0
			for _, r := range overlapping {
				reserved += r.QuantityOf(item.ProductID)
			}
			available := product.TotalQuantity - reserved
			if item.Quantity > available {
				return pkgerrors.New(pkgerrors.CodeUnavailable,
					fmt.Sprintf("%s: Solicitado: %d, Disponible: %d", product.Name, item.Quantity, available)).
					WithDetails(map[string]any{
						"product_id":   product.ID,
						"product_name": product.Name,
						"requested":    item.Quantity,
						"available":    available,
					})
			}
			lines = append(lines, pricing.LineItem{Product: product, Quantity: item.Quantity})
		}

		breakdown, err := pricing.ReservationPrice(lines, days, s.depositPercent)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "pricing reservation")
		}

		res := &models.Reservation{
			ClientID:    input.ClientID,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			Status:      status,
			TotalAmount: breakdown.Total,
			Items:       make([]models.ReservationItem, 0, len(input.Items)),
		}
		for i, item := range input.Items {
			res.Items = append(res.Items, models.ReservationItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Position:  i,
			})
		}

		created, err = txRepo.Create(ctx, res)
		return err
	})
	if txErr != nil {
		if db.IsSerializationFailure(txErr) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTxConflict, txErr, "reservation commit conflicted")
		}
		return nil, txErr
	}
	return created, nil
}

// UpdateStatus moves the reservation along the state machine. Availability
// is not re-validated: cancelling only frees capacity, and confirming a
// pending reservation trusts the creation-time check.
func (s *service) UpdateStatus(ctx context.Context, reservationID uuid.UUID, status enums.ReservationStatus) (*models.Reservation, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}

	res, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition reservation from %s to %s", res.Status, status)).
			WithDetails(map[string]any{"from": res.Status, "to": status})
	}

	if err := s.repo.UpdateStatus(ctx, reservationID, status); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, reservationID)
}

// CancelReservation is a convenience wrapper for the cancelled transition.
func (s *service) CancelReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.UpdateStatus(ctx, reservationID, enums.ReservationStatusCancelled)
}

// GetReservation loads one reservation with items.
func (s *service) GetReservation(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.repo.FindByID(ctx, reservationID)
}

// ListReservations returns reservations matching the filter.
func (s *service) ListReservations(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) recordOutcome(created *models.Reservation, err error) {
	switch {
	case err == nil && created != nil:
		s.bookMetrics.IncReservation(created.Status.String())
	case pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeUnavailable:
		s.bookMetrics.IncReservation("unavailable")
	case pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeTxConflict:
		s.bookMetrics.IncTxConflict()
		s.bookMetrics.IncReservation("conflict")
	case err != nil:
		s.bookMetrics.IncReservation("error")
	}
}

// distinctSortedIDs dedupes product ids and fixes lock acquisition order.
func distinctSortedIDs(items []ItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}
