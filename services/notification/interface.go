package notification

import (
	"context"
	"fmt"

	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"

	"github.com/go-redis/redis/v8"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	NotifyShopNewBooking(ctx context.Context, shopID string, appt *models.Appointment, serviceName string) error
	NotifyCustomerStatusChange(ctx context.Context, appt *models.Appointment) error
	RegisterCustomerToken(ctx context.Context, customerID, token string) error
}

// DefaultNotificationService is the production implementation. Shop tokens
// live on the shop document; customer device tokens are kept in Redis.
type DefaultNotificationService struct {
	shops  shopRepo.ShopRepository
	tokens *redis.Client
}

func NewDefaultNotificationService(shops shopRepo.ShopRepository, tokens *redis.Client) (*DefaultNotificationService, error) {
	if shops == nil || tokens == nil {
		return nil, fmt.Errorf("notification service initialization error: shop repository or token store is nil")
	}
	return &DefaultNotificationService{shops: shops, tokens: tokens}, nil
}
