// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"wrenchly/database"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, shopID, serviceID string) error
	GetByID(ctx context.Context, serviceID string) (*models.Service, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Service, error)
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{
		coll: database.DB().Collection("services"),
	}
}
