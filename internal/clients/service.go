package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dcontreras/mueblesrent-backend/pkg/db/models"
	pkgerrors "github.com/dcontreras/mueblesrent-backend/pkg/errors"
)

// Service exposes client directory operations.
type Service interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*models.Client, error)
	UpdateClient(ctx context.Context, clientID uuid.UUID, input UpdateClientInput) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
	GetClient(ctx context.Context, clientID uuid.UUID) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}

// CreateClientInput holds the validated payload to register a client.
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// UpdateClientInput holds optional mutation values for a client.
type UpdateClientInput struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

// service implements the client directory service.
type service struct {
	repo *Repository
}

// NewService constructs a client service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

// CreateClient validates and persists a new client.
func (s *service) CreateClient(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	c := &models.Client{
		Name:  name,
		Email: strings.TrimSpace(input.Email),
		Phone: strings.TrimSpace(input.Phone),
		Notes: strings.TrimSpace(input.Notes),
	}
	return s.repo.Create(ctx, c)
}

// UpdateClient applies the provided fields to an existing client.
func (s *service) UpdateClient(ctx context.Context, clientID uuid.UUID, input UpdateClientInput) (*models.Client, error) {
	c, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		c.Name = name
	}
	if input.Email != nil {
		c.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		c.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		c.Notes = strings.TrimSpace(*input.Notes)
	}

	return s.repo.Update(ctx, c)
}

// DeleteClient removes the client.
func (s *service) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	return s.repo.Delete(ctx, clientID)
}

// GetClient loads one client.
func (s *service) GetClient(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	return s.repo.FindByID(ctx, clientID)
}

// ListClients returns the full directory.
func (s *service) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.repo.List(ctx)
}
