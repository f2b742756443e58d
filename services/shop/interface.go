package shop

import (
	"context"

	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"
)

// ShopService manages shop profiles, weekly schedules and the service
// catalog.
type ShopService interface {
	CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	GetShopByOwner(ctx context.Context, ownerID string) (*models.Shop, error)

	WorkingHours(ctx context.Context, shopID string) ([]models.WorkingHours, error)
	// SetWorkingHours replaces the weekly schedule. At most one window per
	// weekday; every window must be valid.
	SetWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error

	AddService(ctx context.Context, svc *models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, svc *models.Service) (*models.Service, error)
	RemoveService(ctx context.Context, shopID, serviceID string) error
	ListServices(ctx context.Context, shopID string) ([]models.Service, error)

	RegisterFCMToken(ctx context.Context, shopID, token string) error
}

// DefaultShopService implements ShopService.
type DefaultShopService struct {
	ShopRepo    shopRepo.ShopRepository
	CatalogRepo catalogRepo.CatalogRepository
}
