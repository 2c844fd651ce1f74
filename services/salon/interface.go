package salon

import (
	"context"
	"errors"
	"time"

	salonRepo "salonbook/database/repository/salon"
	"salonbook/models"
	"salonbook/services/storage"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = salonRepo.ErrNotFound
	ErrForbidden = errors.New("salon belongs to another owner")
)

// CatalogueError reports an invalid service catalogue entry.
type CatalogueError struct {
	Index   int
	Message string
}

func (e *CatalogueError) Error() string {
	return e.Message
}

// SalonService is the salon directory: lookups for bookings and browsing,
// catalogue maintenance for owners, moderation for admins.
type SalonService interface {
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	ListSalons(ctx context.Context) ([]models.Salon, error)
	OwnedSalonIDs(ctx context.Context, ownerID string) ([]string, error)
	UpdateServices(ctx context.Context, actor models.Actor, salonID string, services []models.SalonService) (*models.Salon, error)
	SetApproval(ctx context.Context, salonID string, approved bool) (*models.Salon, error)
}

// DefaultSalonService is the production implementation.
type DefaultSalonService struct {
	repo    salonRepo.SalonRepository
	cache   SalonCache
	storage storage.StorageService
	logger  *zap.Logger
	ttl     time.Duration
}

func NewSalonService(repo salonRepo.SalonRepository, cache SalonCache, store storage.StorageService, logger *zap.Logger, ttl time.Duration) (*DefaultSalonService, error) {
	if repo == nil {
		return nil, errors.New("salon service initialization error: repository is nil")
	}
	if cache == nil {
		cache = noCache{}
	}
	if store == nil {
		store = storage.NoopStorage{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSalonService{repo: repo, cache: cache, storage: store, logger: logger, ttl: ttl}, nil
}
