package salonRepo

import (
	"context"
	"errors"

	"salonbook/models"
)

var ErrNotFound = errors.New("salon not found")

// SalonRepository defines methods for salon data access.
type SalonRepository interface {
	// GetByID retrieves a salon by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Salon, error)
	// ListApproved retrieves every approved salon ordered by name.
	ListApproved(ctx context.Context) ([]models.Salon, error)
	// IDsByOwner returns the ids of salons owned by ownerID.
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	// Create inserts a new salon record.
	Create(ctx context.Context, salon *models.Salon) error
	// UpdateServices replaces the service catalogue of a salon.
	UpdateServices(ctx context.Context, id string, services []models.SalonService) (*models.Salon, error)
	// SetApproval toggles the moderation flag.
	SetApproval(ctx context.Context, id string, approved bool) (*models.Salon, error)
}
