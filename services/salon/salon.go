package salon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salonbook/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// GetSalon reads through the cache. Salons are cached without the resolved
// cover URL, which is derived on every read.
func (s *DefaultSalonService) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	cached, err := s.cache.Get(ctx, id)
	if err == nil {
		s.resolveCover(ctx, cached)
		return cached, nil
	}
	if !errors.Is(err, errCacheMiss) {
		s.logger.Warn("salon cache read failed", zap.String("salonId", id), zap.Error(err))
	}

	salon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, salon, s.ttl); err != nil {
		s.logger.Warn("salon cache write failed", zap.String("salonId", id), zap.Error(err))
	}
	s.resolveCover(ctx, salon)
	return salon, nil
}

// ListSalons returns approved salons only.
func (s *DefaultSalonService) ListSalons(ctx context.Context) ([]models.Salon, error) {
	salons, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListSalons: %w", err)
	}
	for i := range salons {
		s.resolveCover(ctx, &salons[i])
	}
	return salons, nil
}

func (s *DefaultSalonService) OwnedSalonIDs(ctx context.Context, ownerID string) ([]string, error) {
	return s.repo.IDsByOwner(ctx, ownerID)
}

type catalogueEntry struct {
	Name  string  `validate:"required,min=2,max=80"`
	Price float64 `validate:"gte=0"`
}

// UpdateServices replaces the catalogue of a salon the actor owns. Bookings
// already made keep their snapshotted prices.
func (s *DefaultSalonService) UpdateServices(ctx context.Context, actor models.Actor, salonID string, services []models.SalonService) (*models.Salon, error) {
	current, err := s.repo.GetByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && current.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}

	cleaned, err := normalizeCatalogue(services)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateServices(ctx, salonID, cleaned)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, salonID)
	s.resolveCover(ctx, updated)
	return updated, nil
}

func normalizeCatalogue(services []models.SalonService) ([]models.SalonService, error) {
	if len(services) == 0 {
		return nil, &CatalogueError{Index: -1, Message: "at least one service is required"}
	}
	seen := make(map[string]bool, len(services))
	out := make([]models.SalonService, 0, len(services))
	for i, svc := range services {
		svc.Name = strings.TrimSpace(svc.Name)
		if err := validate.Struct(catalogueEntry{Name: svc.Name, Price: svc.Price}); err != nil {
			return nil, &CatalogueError{Index: i, Message: fmt.Sprintf("service %d: name must be 2-80 characters and price non-negative", i)}
		}
		if svc.OfferPrice != nil && (*svc.OfferPrice < 0 || *svc.OfferPrice >= svc.Price) {
			return nil, &CatalogueError{Index: i, Message: fmt.Sprintf("service %d: offer price must be below the regular price", i)}
		}
		key := strings.ToLower(svc.Name)
		if seen[key] {
			return nil, &CatalogueError{Index: i, Message: fmt.Sprintf("service %q is listed twice", svc.Name)}
		}
		seen[key] = true
		out = append(out, svc)
	}
	return out, nil
}

// SetApproval toggles moderation. Unapproved salons cannot take bookings.
func (s *DefaultSalonService) SetApproval(ctx context.Context, salonID string, approved bool) (*models.Salon, error) {
	updated, err := s.repo.SetApproval(ctx, salonID, approved)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, salonID)
	s.logger.Info("salon approval changed", zap.String("salonId", salonID), zap.Bool("approved", approved))
	return updated, nil
}

func (s *DefaultSalonService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("salon cache invalidation failed", zap.String("salonId", id), zap.Error(err))
	}
}

func (s *DefaultSalonService) resolveCover(ctx context.Context, salon *models.Salon) {
	if salon.CoverImage == "" {
		return
	}
	url, err := s.storage.GetDownloadURL(ctx, "image", salon.CoverImage)
	if err != nil {
		s.logger.Debug("cover url resolution failed", zap.String("salonId", salon.ID), zap.Error(err))
		return
	}
	salon.CoverURL = url
}
