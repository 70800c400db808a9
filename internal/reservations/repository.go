package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

// ListFilter narrows reservation listings.
type ListFilter struct {
	Status   *enums.ReservationStatus
	ClientID *uuid.UUID
}

// Repository wires reservation persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists the reservation with its line items in one insert tree.
func (r *Repository) Create(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// FindByID loads a reservation with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("reservation %s not found", id))
		}
		return nil, err
	}
	return &res, nil
}

// List returns reservations matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var out []models.Reservation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListConfirmedOverlapping returns confirmed reservations whose closed
// date range intersects [start, end], items included.
func (r *Repository) ListConfirmedOverlapping(ctx context.Context, start, end string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", enums.ReservationStatusConfirmed).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus writes the new status and bumps updated_at.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ReservationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("reservation %s not found", id))
	}
	return nil
}

// LockProducts takes FOR UPDATE row locks on the given products and
// returns them. Ids are locked in sorted order by the caller to keep
// lock acquisition deadlock-free; locking serializes concurrent booking
// attempts touching the same products.
func (r *Repository) LockProducts(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
