package notification

import (
	"context"
	"fmt"
	"time"

	"wrenchly/models"
	"wrenchly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

func customerTokenKey(customerID string) string {
	return "fcmtoken:customer:" + customerID
}

// RegisterCustomerToken stores a customer's device token for pushes.
func (s *DefaultNotificationService) RegisterCustomerToken(ctx context.Context, customerID, token string) error {
	if token == "" {
		return fmt.Errorf("RegisterCustomerToken: empty token for customer %s", customerID)
	}
	return s.tokens.Set(ctx, customerTokenKey(customerID), token, 0).Err()
}

// NotifyShopNewBooking pushes a new-booking alert to the shop's device.
func (s *DefaultNotificationService) NotifyShopNewBooking(ctx context.Context, shopID string, appt *models.Appointment, serviceName string) error {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return fmt.Errorf("NotifyShopNewBooking: could not find shop %s: %w", shopID, err)
	}
	if shop.FCMToken == "" {
		return fmt.Errorf("NotifyShopNewBooking: shop %s has no FCM token", shopID)
	}

	title := "New booking request"
	body := fmt.Sprintf("%s on %s", serviceName, appt.StartTime.Format("Mon 2 Jan 15:04"))
	return s.send(ctx, shop.FCMToken, title, body, map[string]string{
		"appointmentId": appt.ID,
		"role":          "shop",
	})
}

// NotifyCustomerStatusChange pushes a status update to the booking customer.
func (s *DefaultNotificationService) NotifyCustomerStatusChange(ctx context.Context, appt *models.Appointment) error {
	token, err := s.tokens.Get(ctx, customerTokenKey(appt.CustomerID)).Result()
	if err != nil || token == "" {
		return fmt.Errorf("NotifyCustomerStatusChange: no device token for customer %s", appt.CustomerID)
	}

	var title string
	switch appt.Status {
	case models.StatusConfirmed:
		title = "Appointment confirmed"
	case models.StatusCancelled:
		title = "Appointment cancelled"
	case models.StatusCompleted:
		title = "Appointment completed"
	default:
		title = "Appointment updated"
	}
	body := appt.StartTime.Format("Mon 2 Jan 15:04")
	return s.send(ctx, token, title, body, map[string]string{
		"appointmentId": appt.ID,
		"status":        string(appt.Status),
		"role":          "customer",
	})
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("response", response))
	return nil
}
