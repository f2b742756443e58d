package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"wrenchly/models"
	"wrenchly/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// availabilityCacheTTL bounds how stale a cached day may get. The confirm
// path re-validates against live bookings, so staleness only costs the
// occasional conflict retry.
const availabilityCacheTTL = time.Minute

// DayAvailability computes the ordered bookable start times (minutes from
// midnight) for one shop, service and date.
func (s *DefaultBookingSessionService) DayAvailability(ctx context.Context, shopID, serviceID, date string) ([]int, error) {
	shop, err := s.ShopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop %s: %w", shopID, err)
	}
	svc, err := s.CatalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", serviceID, err)
	}
	if svc.ShopID != shop.ID {
		return nil, NewValidationError("service does not belong to this shop")
	}
	return s.dayAvailability(ctx, shop, svc, date)
}

// validateBookable rejects shop/service data that cannot produce correct
// slots. Booking is disabled for the shop rather than guessing.
func validateBookable(shop *models.Shop, svc *models.Service) error {
	if shop.SlotGranularity <= 0 {
		return NewValidationError("shop has no slot granularity configured")
	}
	if svc.Duration <= 0 || svc.Duration%shop.SlotGranularity != 0 {
		return NewValidationError(
			fmt.Sprintf("service duration %d is not a multiple of the %d-minute grid", svc.Duration, shop.SlotGranularity))
	}
	return nil
}

func (s *DefaultBookingSessionService) dayAvailability(ctx context.Context, shop *models.Shop, svc *models.Service, date string) ([]int, error) {
	if err := validateBookable(shop, svc); err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q", date))
	}

	// The cache holds the full day; past starts are trimmed on every read
	// so a cached entry cannot offer a time that has slipped by.
	if cached, ok := s.cachedAvailability(ctx, shop.ID, svc.ID, date); ok {
		return s.trimPastStarts(cached, day), nil
	}

	hours, ok := models.HoursForDay(shop.WorkingHours, day.Weekday())
	if !ok || hours.Closed() {
		return nil, nil
	}

	appts, err := s.ApptRepo.ListActiveBetween(ctx, shop.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for %s: %w", date, err)
	}

	busy := BusyFromAppointments(appts, day)
	slots := GenerateSlots(hours.Open, hours.Close, svc.Duration, shop.SlotGranularity, busy)

	s.storeAvailability(ctx, shop.ID, svc.ID, date, slots)
	return s.trimPastStarts(slots, day), nil
}

// trimPastStarts drops start times that are already in the past when the
// given day is today.
func (s *DefaultBookingSessionService) trimPastStarts(slots []int, day time.Time) []int {
	now := s.now()
	if !now.After(day) || !now.Before(day.AddDate(0, 0, 1)) {
		return slots
	}
	trimmed := make([]int, 0, len(slots))
	for _, t := range slots {
		if !day.Add(time.Duration(t) * time.Minute).Before(now) {
			trimmed = append(trimmed, t)
		}
	}
	return trimmed
}

// weekAvailability computes each date of the window independently and
// concurrently. A failed date degrades to no slots instead of failing the
// whole window.
func (s *DefaultBookingSessionService) weekAvailability(ctx context.Context, shop *models.Shop, svc *models.Service, weekStart time.Time) map[string][]int {
	logger := utils.GetLogger()
	days := s.windowDays()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		avail = make(map[string][]int, days)
	)
	for i := 0; i < days; i++ {
		date := weekStart.AddDate(0, 0, i).Format(dateLayout)
		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			slots, err := s.dayAvailability(ctx, shop, svc, date)
			if err != nil {
				logger.Warn("availability fetch degraded to empty",
					zap.String("shopID", shop.ID), zap.String("date", date), zap.Error(err))
				slots = nil
			}
			mu.Lock()
			avail[date] = slots
			mu.Unlock()
		}(date)
	}
	wg.Wait()
	return avail
}

func availabilityCacheKey(shopID, serviceID, date string) string {
	return fmt.Sprintf("avail:%s:%s:%s", shopID, serviceID, date)
}

func (s *DefaultBookingSessionService) cachedAvailability(ctx context.Context, shopID, serviceID, date string) ([]int, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, availabilityCacheKey(shopID, serviceID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []int
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultBookingSessionService) storeAvailability(ctx context.Context, shopID, serviceID, date string, slots []int) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	s.Cache.Set(ctx, availabilityCacheKey(shopID, serviceID, date), raw, availabilityCacheTTL)
}

// InvalidateAvailability drops the cached day after a booking lands on it.
func (s *DefaultBookingSessionService) invalidateAvailability(ctx context.Context, shopID, serviceID, date string) {
	if s.Cache == nil {
		return
	}
	s.Cache.Del(ctx, availabilityCacheKey(shopID, serviceID, date))
}
