package appointment

import (
	"context"
	"time"

	appointmentRepo "wrenchly/database/repository/appointment"
	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"
	"wrenchly/services/notification"

	"github.com/hibiken/asynq"
)

// CreateRequest is a direct booking outside a session.
type CreateRequest struct {
	ShopID     string
	ServiceID  string
	CustomerID string
	StartTime  time.Time
}

// AppointmentService mediates every status mutation through the gate and
// serves appointment listings.
type AppointmentService interface {
	// Create books a pending appointment directly, re-running the same
	// working-hours, grid and overlap validation as the session flow.
	Create(ctx context.Context, req CreateRequest) (*models.Appointment, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	ListForShop(ctx context.Context, shopID string) ([]models.Appointment, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	// Transition moves the appointment to the target status on behalf of
	// the actor. Re-submitting the current status is a no-op success.
	Transition(ctx context.Context, id string, target models.AppointmentStatus, actor Actor) (*models.Appointment, error)
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo        appointmentRepo.AppointmentRepository
	ShopRepo    shopRepo.ShopRepository
	CatalogRepo catalogRepo.CatalogRepository
	Notify      notification.NotificationService
	// Queue schedules the time-driven completion task when an appointment
	// is confirmed. Optional; nil disables scheduling.
	Queue *asynq.Client

	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
