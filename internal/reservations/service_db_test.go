package reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/dcontreras/mueblesrent-backend/internal/availability"
	client "github.com/dcontreras/mueblesrent-backend/internal/clients"
	product "github.com/dcontreras/mueblesrent-backend/internal/products"
	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

func newDBTestService(t *testing.T, dbClient *db.Client) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(dbClient.DB()),
		dbClient,
		client.NewRepository(dbClient.DB()),
		nil,
		config.BookingConfig{DepositPercent: 30},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func newDBAvailabilityService(t *testing.T, dbClient *db.Client) availability.Service {
	t.Helper()
	svc, err := availability.NewService(
		product.NewRepository(dbClient.DB()),
		NewRepository(dbClient.DB()),
		nil,
		config.BookingConfig{SearchHorizonDays: 90},
	)
	if err != nil {
		t.Fatalf("availability.NewService: %v", err)
	}
	return svc
}

func TestCreateReservationAndAvailabilityRoundTrip(t *testing.T) {
	dbClient := openTestClient(t)
	ctx := context.Background()

	p := mustCreateTestProduct(t, dbClient.DB(), 5, 1000)
	c := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), c.ID)

	svc := newDBTestService(t, dbClient)
	availSvc := newDBAvailabilityService(t, dbClient)

	created, err := svc.CreateReservation(ctx, CreateReservationInput{
		ClientID:  c.ID,
		StartDate: futureDate(1),
		EndDate:   futureDate(5),
		Items:     []ItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if created.Status != enums.ReservationStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", created.Status)
	}
	// 3 units x 1000 x 5 days = 15000, no volume tier at 5 days.
	if created.TotalAmount != 15000 {
		t.Fatalf("total = %d, want 15000", created.TotalAmount)
	}

	res, err := availSvc.Check(ctx, availability.CheckInput{
		ProductID: p.ID,
		Quantity:  3,
		StartDate: futureDate(3),
		EndDate:   futureDate(4),
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Available || res.MaxAvailable != 2 {
		t.Fatalf("expected maxAvailable=2, got %+v", res)
	}

	res, err = availSvc.Check(ctx, availability.CheckInput{
		ProductID: p.ID,
		Quantity:  2,
		StartDate: futureDate(3),
		EndDate:   futureDate(4),
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Available {
		t.Fatalf("expected 2 units available, got %+v", res)
	}
}

func TestInsufficientAvailabilityAbortsWholeReservation(t *testing.T) {
	dbClient := openTestClient(t)
	ctx := context.Background()

	plenty := mustCreateTestProduct(t, dbClient.DB(), 10, 500)
	scarce := mustCreateTestProduct(t, dbClient.DB(), 1, 500)
	c := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), c.ID)

	svc := newDBTestService(t, dbClient)

	// Exhaust the scarce product.
	holder := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), holder.ID)
	if _, err := svc.CreateReservation(ctx, CreateReservationInput{
		ClientID:  holder.ID,
		StartDate: futureDate(1),
		EndDate:   futureDate(10),
		Items:     []ItemInput{{ProductID: scarce.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	_, err := svc.CreateReservation(ctx, CreateReservationInput{
		ClientID:  c.ID,
		StartDate: futureDate(2),
		EndDate:   futureDate(4),
		Items: []ItemInput{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 1},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnavailable {
		t.Fatalf("expected INSUFFICIENT_AVAILABILITY, got %v", err)
	}

	// All-or-nothing: the passing line must not have been written either.
	rows, err := svc.ListReservations(ctx, ListFilter{ClientID: &c.ID})
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no reservations for aborted booking, got %d", len(rows))
	}
}

func TestCancellationRestoresAvailability(t *testing.T) {
	dbClient := openTestClient(t)
	ctx := context.Background()

	p := mustCreateTestProduct(t, dbClient.DB(), 4, 1000)
	c := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), c.ID)

	svc := newDBTestService(t, dbClient)
	availSvc := newDBAvailabilityService(t, dbClient)

	created, err := svc.CreateReservation(ctx, CreateReservationInput{
		ClientID:  c.ID,
		StartDate: futureDate(1),
		EndDate:   futureDate(3),
		Items:     []ItemInput{{ProductID: p.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	res, err := availSvc.Check(ctx, availability.CheckInput{
		ProductID: p.ID, Quantity: 1, StartDate: futureDate(1), EndDate: futureDate(3),
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Available {
		t.Fatalf("expected exhausted supply before cancellation")
	}

	if _, err := svc.CancelReservation(ctx, created.ID); err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}

	res, err = availSvc.Check(ctx, availability.CheckInput{
		ProductID: p.ID, Quantity: 4, StartDate: futureDate(1), EndDate: futureDate(3),
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Available || res.MaxAvailable != 4 {
		t.Fatalf("cancellation must restore full supply, got %+v", res)
	}
}

func TestStatusTransitions(t *testing.T) {
	dbClient := openTestClient(t)
	ctx := context.Background()

	p := mustCreateTestProduct(t, dbClient.DB(), 2, 1000)
	c := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), c.ID)

	svc := newDBTestService(t, dbClient)

	created, err := svc.CreateReservation(ctx, CreateReservationInput{
		ClientID:  c.ID,
		StartDate: futureDate(1),
		EndDate:   futureDate(2),
		Status:    enums.ReservationStatusPending,
		Items:     []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	confirmed, err := svc.UpdateStatus(ctx, created.ID, enums.ReservationStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if confirmed.Status != enums.ReservationStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}

	cancelled, err := svc.CancelReservation(ctx, created.ID)
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if cancelled.Status != enums.ReservationStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	// Cancelled is terminal.
	_, err = svc.UpdateStatus(ctx, created.ID, enums.ReservationStatusConfirmed)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestConcurrentBookingExactlyOneWinner(t *testing.T) {
	dbClient := openTestClient(t)
	ctx := context.Background()

	p := mustCreateTestProduct(t, dbClient.DB(), 2, 1000)
	c := mustCreateTestClient(t, dbClient.DB())
	cleanupReservations(t, dbClient.DB(), c.ID)

	svc := newDBTestService(t, dbClient)

	input := CreateReservationInput{
		ClientID:  c.ID,
		StartDate: futureDate(1),
		EndDate:   futureDate(5),
		Items:     []ItemInput{{ProductID: p.ID, Quantity: 2}},
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = svc.CreateReservation(ctx, input)
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnavailable {
			t.Fatalf("loser must fail with INSUFFICIENT_AVAILABILITY, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes)
	}

	// Invariant: confirmed demand never exceeds supply.
	repo := NewRepository(dbClient.DB())
	overlapping, err := repo.ListConfirmedOverlapping(ctx, input.StartDate, input.EndDate)
	if err != nil {
		t.Fatalf("ListConfirmedOverlapping: %v", err)
	}
	total := 0
	for _, r := range overlapping {
		total += r.QuantityOf(p.ID)
	}
	if total > p.TotalQuantity {
		t.Fatalf("overbooked: %d units confirmed against supply of %d", total, p.TotalQuantity)
	}
}
