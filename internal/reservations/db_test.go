package reservation

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := os.Getenv("MUEBLESRENT_DB_DSN")
	if dsn == "" {
		t.Skip("MUEBLESRENT_DB_DSN is not set")
	}

	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn, TxMaxRetries: 3}, nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func mustCreateTestProduct(t *testing.T, conn *gorm.DB, totalQuantity, pricePerDay int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		Name:          "Test Silla " + uuid.NewString(),
		Category:      enums.ProductCategoryChair,
		TotalQuantity: totalQuantity,
		PricePerDay:   pricePerDay,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	t.Cleanup(func() { conn.Delete(&models.Product{}, "id = ?", product.ID) })
	return product
}

func mustCreateTestClient(t *testing.T, conn *gorm.DB) *models.Client {
	t.Helper()
	c := &models.Client{
		ID:    uuid.New(),
		Name:  "Test Cliente " + uuid.NewString(),
		Email: uuid.NewString() + "@example.com",
	}
	if err := conn.Create(c).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() { conn.Delete(&models.Client{}, "id = ?", c.ID) })
	return c
}

func cleanupReservations(t *testing.T, conn *gorm.DB, clientID uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		conn.Delete(&models.Reservation{}, "client_id = ?", clientID)
	})
}
