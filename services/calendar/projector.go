package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	appointmentRepo "wrenchly/database/repository/appointment"
	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"
	"wrenchly/utils"

	"go.uber.org/zap"
)

// CalendarService projects a shop's recurring working hours and its
// appointments into renderable events for a visible date range.
type CalendarService interface {
	// Project returns the events of the half-open window [from, to).
	Project(ctx context.Context, shopID string, from, to time.Time) ([]models.CalendarEvent, error)
}

// DefaultCalendarService implements CalendarService.
type DefaultCalendarService struct {
	ShopRepo    shopRepo.ShopRepository
	CatalogRepo catalogRepo.CatalogRepository
	ApptRepo    appointmentRepo.AppointmentRepository
}

// ViewRange resolves a view and an anchor date into the half-open window
// [from, to) the calendar displays. Weeks start on Monday.
func ViewRange(view models.CalendarView, anchor time.Time) (time.Time, time.Time, error) {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	switch view {
	case models.ViewDay:
		return day, day.AddDate(0, 0, 1), nil
	case models.ViewWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case models.ViewMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown calendar view %q", view)
	}
}

// Project expands the shop's weekly hours across the visible range and
// overlays the appointments falling inside it. Recurring hours are
// expanded lazily for the requested range only.
func (s *DefaultCalendarService) Project(ctx context.Context, shopID string, from, to time.Time) ([]models.CalendarEvent, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("empty calendar range [%s, %s)", from, to)
	}

	shop, err := s.ShopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	events := expandWorkingHours(shop.WorkingHours, from, to)

	appts, err := s.ApptRepo.ListBetween(ctx, shopID, from, to)
	if err != nil {
		return nil, err
	}

	titles := s.serviceTitles(ctx, shopID)
	for _, a := range appts {
		title, ok := titles[a.ServiceID]
		if !ok {
			title = "Appointment"
		}
		events = append(events, models.CalendarEvent{
			ID:     a.ID,
			Kind:   models.KindAppointment,
			Title:  title,
			Start:  a.StartTime,
			End:    a.EndTime(),
			Status: a.Status,
			Color:  StatusColor(a.Status),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// expandWorkingHours materialises one background event per open day in
// [from, to).
func expandWorkingHours(hours []models.WorkingHours, from, to time.Time) []models.CalendarEvent {
	var events []models.CalendarEvent
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for day := first; day.Before(to); day = day.AddDate(0, 0, 1) {
		wh, ok := models.HoursForDay(hours, day.Weekday())
		if !ok || wh.Closed() {
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:         "wh:" + day.Format("2006-01-02"),
			Kind:       models.KindWorking,
			Title:      "Open",
			Start:      day.Add(time.Duration(wh.Open) * time.Minute),
			End:        day.Add(time.Duration(wh.Close) * time.Minute),
			Color:      colorWorking,
			Background: true,
		})
	}
	return events
}

// serviceTitles maps service IDs to names for event titles. A failed
// lookup degrades to generic titles rather than failing the projection.
func (s *DefaultCalendarService) serviceTitles(ctx context.Context, shopID string) map[string]string {
	titles := make(map[string]string)
	services, err := s.CatalogRepo.ListByShop(ctx, shopID)
	if err != nil {
		utils.GetLogger().Warn("could not load service names for calendar",
			zap.String("shopID", shopID), zap.Error(err))
		return titles
	}
	for _, svc := range services {
		titles[svc.ID] = svc.Name
	}
	return titles
}
