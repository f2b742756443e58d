// File: database/repository/shop/interface.go
package shopRepo

import (
	"context"

	"wrenchly/database"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, shopID string) (*models.Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error)
	UpdateProfile(ctx context.Context, shop *models.Shop) error
	UpdateWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error
	UpdateFCMToken(ctx context.Context, shopID, token string) error
}

type mongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo constructs a new MongoDB ShopRepository.
func NewMongoShopRepo() ShopRepository {
	return &mongoShopRepo{
		coll: database.DB().Collection("shops"),
	}
}
