package shop

import (
	"context"
	"fmt"
	"time"

	"wrenchly/config"
	"wrenchly/models"
	"wrenchly/services/booking"
	"wrenchly/utils"

	"go.uber.org/zap"
)

func (s *DefaultShopService) CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if shop.Name == "" {
		return nil, booking.NewValidationError("shop name is required")
	}
	if shop.OwnerID == "" {
		return nil, booking.NewValidationError("shop owner is required")
	}
	if shop.SlotGranularity == 0 {
		shop.SlotGranularity = config.AppConfig.DefaultGranularity
		if shop.SlotGranularity == 0 {
			shop.SlotGranularity = 30
		}
	}
	if shop.SlotGranularity <= 0 {
		return nil, booking.NewValidationError("slot granularity must be positive")
	}
	if err := validateSchedule(shop.WorkingHours); err != nil {
		return nil, err
	}
	shop.CreatedAt = time.Now()

	if err := s.ShopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	utils.GetLogger().Info("shop created",
		zap.String("shopID", shop.ID), zap.String("name", shop.Name))
	return shop, nil
}

func (s *DefaultShopService) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	return s.ShopRepo.GetByID(ctx, shopID)
}

func (s *DefaultShopService) GetShopByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	return s.ShopRepo.GetByOwner(ctx, ownerID)
}

func (s *DefaultShopService) WorkingHours(ctx context.Context, shopID string) ([]models.WorkingHours, error) {
	shop, err := s.ShopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return shop.WorkingHours, nil
}

func (s *DefaultShopService) SetWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error {
	if err := validateSchedule(hours); err != nil {
		return err
	}
	return s.ShopRepo.UpdateWorkingHours(ctx, shopID, hours)
}

func (s *DefaultShopService) AddService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	shop, err := s.ShopRepo.GetByID(ctx, svc.ShopID)
	if err != nil {
		return nil, err
	}
	if err := validateService(svc, shop.SlotGranularity); err != nil {
		return nil, err
	}
	if err := s.CatalogRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultShopService) UpdateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	shop, err := s.ShopRepo.GetByID(ctx, svc.ShopID)
	if err != nil {
		return nil, err
	}
	if err := validateService(svc, shop.SlotGranularity); err != nil {
		return nil, err
	}
	if err := s.CatalogRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultShopService) RemoveService(ctx context.Context, shopID, serviceID string) error {
	return s.CatalogRepo.Delete(ctx, shopID, serviceID)
}

func (s *DefaultShopService) ListServices(ctx context.Context, shopID string) ([]models.Service, error) {
	return s.CatalogRepo.ListByShop(ctx, shopID)
}

func (s *DefaultShopService) RegisterFCMToken(ctx context.Context, shopID, token string) error {
	if token == "" {
		return booking.NewValidationError("device token is required")
	}
	return s.ShopRepo.UpdateFCMToken(ctx, shopID, token)
}

// validateSchedule rejects invalid windows and duplicate weekdays. A
// malformed schedule must never produce slots, so this runs on every write.
func validateSchedule(hours []models.WorkingHours) error {
	seen := make(map[time.Weekday]bool, len(hours))
	for _, w := range hours {
		if err := w.Validate(); err != nil {
			return booking.NewValidationError(err.Error())
		}
		if seen[w.Day] {
			return booking.NewValidationError(fmt.Sprintf("duplicate working hours for %s", w.Day))
		}
		seen[w.Day] = true
	}
	return nil
}

func validateService(svc *models.Service, granularity int) error {
	if svc.Name == "" {
		return booking.NewValidationError("service name is required")
	}
	if svc.Price < 0 {
		return booking.NewValidationError("service price cannot be negative")
	}
	if svc.Duration <= 0 {
		return booking.NewValidationError("service duration must be positive")
	}
	if granularity > 0 && svc.Duration%granularity != 0 {
		return booking.NewValidationError(
			fmt.Sprintf("service duration %d is not a multiple of the %d-minute slot granularity", svc.Duration, granularity))
	}
	return nil
}
