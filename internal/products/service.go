package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	"github.com/dcontreras/mueblesrent-backend/pkg/enums"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Category      enums.ProductCategory
	TotalQuantity int
	PricePerDay   int
	Description   string
	ImageURL      string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	Category      *enums.ProductCategory
	TotalQuantity *int
	PricePerDay   *int
	Description   *string
	ImageURL      *string
}

// service implements the catalog service.
type service struct {
	repo *Repository
}

// NewService constructs a product service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates and persists a new catalog entry.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", input.Category))
	}
	if input.TotalQuantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_quantity must be at least 1")
	}
	if input.PricePerDay < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_day cannot be negative")
	}

	product := &models.Product{
		Name:          name,
		Category:      input.Category,
		TotalQuantity: input.TotalQuantity,
		PricePerDay:   input.PricePerDay,
		Description:   strings.TrimSpace(input.Description),
		ImageURL:      strings.TrimSpace(input.ImageURL),
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct applies the provided fields to an existing product.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", *input.Category))
		}
		product.Category = *input.Category
	}
	if input.TotalQuantity != nil {
		if *input.TotalQuantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_quantity must be at least 1")
		}
		product.TotalQuantity = *input.TotalQuantity
	}
	if input.PricePerDay != nil {
		if *input.PricePerDay < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_day cannot be negative")
		}
		product.PricePerDay = *input.PricePerDay
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	return s.repo.Update(ctx, product)
}

// DeleteProduct removes the product from the catalog.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.repo.Delete(ctx, productID)
}

// GetProduct loads one product.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return s.repo.FindByID(ctx, productID)
}

// ListProducts returns the full catalog.
func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}
