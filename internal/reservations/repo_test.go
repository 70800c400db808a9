package reservation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

func setupReservationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// one shared in-memory DB per test, isolated across the pool
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  total_quantity INTEGER NOT NULL,
  price_per_day INTEGER NOT NULL,
  description TEXT,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	clients := `
CREATE TABLE clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	reservations := `
CREATE TABLE reservations (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  status TEXT NOT NULL,
  total_amount INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	reservationItems := `
CREATE TABLE reservation_items (
  id TEXT PRIMARY KEY,
  reservation_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  position INTEGER NOT NULL DEFAULT 0
);`

	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(clients).Error)
	require.NoError(t, db.Exec(reservations).Error)
	require.NoError(t, db.Exec(reservationItems).Error)

	return db
}

func seedReservation(t *testing.T, repo *Repository, clientID, productID uuid.UUID, start, end string, status enums.ReservationStatus, quantity int) *models.Reservation {
	t.Helper()
	res, err := repo.Create(context.Background(), &models.Reservation{
		ID:          uuid.New(),
		ClientID:    clientID,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		TotalAmount: 10000,
		Items: []models.ReservationItem{
			{ID: uuid.New(), ProductID: productID, Quantity: quantity, Position: 0},
		},
	})
	require.NoError(t, err)
	return res
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewRepository(db)
	clientID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	created, err := repo.Create(context.Background(), &models.Reservation{
		ID:          uuid.New(),
		ClientID:    clientID,
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-12",
		Status:      enums.ReservationStatusConfirmed,
		TotalAmount: 54000,
		Items: []models.ReservationItem{
			{ID: uuid.New(), ProductID: productB, Quantity: 2, Position: 1},
			{ID: uuid.New(), ProductID: productA, Quantity: 4, Position: 0},
		},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, productA, found.Items[0].ProductID, "items come back in submission order")
	assert.Equal(t, productB, found.Items[1].ProductID)
	assert.Equal(t, 54000, found.TotalAmount)
	assert.Equal(t, 4, found.QuantityOf(productA))
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRepositoryListConfirmedOverlapping(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewRepository(db)
	clientID := uuid.New()
	productID := uuid.New()

	inside := seedReservation(t, repo, clientID, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusConfirmed, 2)
	touching := seedReservation(t, repo, clientID, productID, "2026-09-12", "2026-09-15", enums.ReservationStatusConfirmed, 1)
	seedReservation(t, repo, clientID, productID, "2026-09-20", "2026-09-22", enums.ReservationStatusConfirmed, 1)
	seedReservation(t, repo, clientID, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusPending, 5)
	seedReservation(t, repo, clientID, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusCancelled, 5)

	overlapping, err := repo.ListConfirmedOverlapping(context.Background(), "2026-09-11", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, overlapping, 2, "only confirmed reservations intersecting the range count")

	ids := []uuid.UUID{overlapping[0].ID, overlapping[1].ID}
	assert.Contains(t, ids, inside.ID)
	assert.Contains(t, ids, touching.ID)
	require.NotEmpty(t, overlapping[0].Items, "items are preloaded for quantity sums")
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewRepository(db)
	clientA := uuid.New()
	clientB := uuid.New()
	productID := uuid.New()

	seedReservation(t, repo, clientA, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusConfirmed, 1)
	seedReservation(t, repo, clientA, productID, "2026-09-14", "2026-09-15", enums.ReservationStatusCancelled, 1)
	seedReservation(t, repo, clientB, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusConfirmed, 1)

	all, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	confirmed := enums.ReservationStatusConfirmed
	byStatus, err := repo.List(context.Background(), ListFilter{Status: &confirmed})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byClient, err := repo.List(context.Background(), ListFilter{ClientID: &clientA})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupReservationTestDB(t)
	repo := NewRepository(db)
	clientID := uuid.New()
	productID := uuid.New()

	res := seedReservation(t, repo, clientID, productID, "2026-09-10", "2026-09-12", enums.ReservationStatusPending, 1)

	require.NoError(t, repo.UpdateStatus(context.Background(), res.ID, enums.ReservationStatusConfirmed))

	found, err := repo.FindByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReservationStatusConfirmed, found.Status)

	err = repo.UpdateStatus(context.Background(), uuid.New(), enums.ReservationStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
