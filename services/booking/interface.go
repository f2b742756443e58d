package booking

import (
	"context"
	"time"

	appointmentRepo "wrenchly/database/repository/appointment"
	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"
	"wrenchly/services/notification"

	"github.com/go-redis/redis/v8"
)

// BookingSessionService manages the stateful customer booking flow:
// start -> select service -> pick a slot from a 7-day window -> confirm.
type BookingSessionService interface {
	StartSession(ctx context.Context, shopID, customerID string) (*models.BookingSessionResponse, error)
	// UpdateSession selects a service and/or moves the visible week window.
	// weekIndex is relative to today (0 = the week starting today).
	UpdateSession(ctx context.Context, sessionID, serviceID string, weekIndex int) (*models.BookingSessionResponse, error)
	SelectSlot(ctx context.Context, sessionID, date, clock string) (*models.BookingSessionResponse, error)
	ConfirmBooking(ctx context.Context, sessionID string) (*models.BookingSessionResponse, error)
	CancelSession(ctx context.Context, sessionID string) error

	// DayAvailability is the stateless per-date slot computation, also
	// exposed directly for availability lookups outside a session.
	DayAvailability(ctx context.Context, shopID, serviceID, date string) ([]int, error)
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	ShopRepo    shopRepo.ShopRepository
	CatalogRepo catalogRepo.CatalogRepository
	ApptRepo    appointmentRepo.AppointmentRepository
	Cache       *redis.Client
	Notify      notification.NotificationService

	SessionTTL time.Duration
	WindowDays int

	// Now is the clock source; tests override it.
	Now func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingSessionService) windowDays() int {
	if s.WindowDays > 0 {
		return s.WindowDays
	}
	return 7
}

func (s *DefaultBookingSessionService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 10 * time.Minute
}
