package appointment

import (
	"context"
	"fmt"
	"time"

	"wrenchly/models"
	"wrenchly/services/booking"
	"wrenchly/utils"

	"go.uber.org/zap"
)

// Create books a pending appointment from an explicit start time. The slot
// must land on the shop's slot grid inside its working hours, and the
// repository enforces the overlap invariant atomically.
func (s *DefaultAppointmentService) Create(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	shop, err := s.ShopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	svc, err := s.CatalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ShopID != shop.ID {
		return nil, booking.NewValidationError("service does not belong to this shop")
	}

	if err := validateSlot(shop, svc, req.StartTime, s.now()); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ShopID:     shop.ID,
		ServiceID:  svc.ID,
		CustomerID: req.CustomerID,
		StartTime:  req.StartTime,
		Duration:   svc.Duration,
		Status:     models.StatusPending,
	}
	if err := s.Repo.CreateIfFree(ctx, appt); err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if err := s.Notify.NotifyShopNewBooking(ctx, shop.ID, appt, svc.Name); err != nil {
			utils.GetLogger().Warn("new-booking push failed",
				zap.String("shopID", shop.ID), zap.Error(err))
		}
	}
	return appt, nil
}

// validateSlot checks a start time against the shop's schedule and grid.
func validateSlot(shop *models.Shop, svc *models.Service, start, now time.Time) error {
	if shop.SlotGranularity <= 0 {
		return booking.NewValidationError("shop has no slot granularity configured")
	}
	if svc.Duration <= 0 || svc.Duration%shop.SlotGranularity != 0 {
		return booking.NewValidationError(
			fmt.Sprintf("service duration %d does not fit the %d-minute slot grid", svc.Duration, shop.SlotGranularity))
	}
	if start.Before(now) {
		return booking.NewValidationError("start time is in the past")
	}

	wh, ok := models.HoursForDay(shop.WorkingHours, start.Weekday())
	if !ok || wh.Closed() {
		return booking.NewValidationError(fmt.Sprintf("shop is closed on %s", start.Weekday()))
	}

	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	startMin := int(start.Sub(midnight) / time.Minute)
	if startMin < wh.Open || startMin+svc.Duration > wh.Close {
		return booking.NewValidationError("appointment does not fit inside working hours")
	}
	if (startMin-wh.Open)%shop.SlotGranularity != 0 {
		return booking.NewValidationError("start time is not on the slot grid")
	}
	return nil
}
