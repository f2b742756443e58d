package calendar

import (
	"context"
	"testing"
	"time"

	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShopRepo struct {
	shop *models.Shop
}

func (s *stubShopRepo) Create(ctx context.Context, shop *models.Shop) error { return nil }

func (s *stubShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	if s.shop == nil || s.shop.ID != shopID {
		return nil, shopRepo.ErrNotFound
	}
	return s.shop, nil
}

func (s *stubShopRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	return nil, shopRepo.ErrNotFound
}

func (s *stubShopRepo) UpdateProfile(ctx context.Context, shop *models.Shop) error { return nil }

func (s *stubShopRepo) UpdateWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error {
	return nil
}

func (s *stubShopRepo) UpdateFCMToken(ctx context.Context, shopID, token string) error { return nil }

type stubCatalogRepo struct {
	services []models.Service
}

func (s *stubCatalogRepo) Create(ctx context.Context, svc *models.Service) error      { return nil }
func (s *stubCatalogRepo) Update(ctx context.Context, svc *models.Service) error      { return nil }
func (s *stubCatalogRepo) Delete(ctx context.Context, shopID, serviceID string) error { return nil }
func (s *stubCatalogRepo) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListByShop(ctx context.Context, shopID string) ([]models.Service, error) {
	return s.services, nil
}

type stubApptRepo struct {
	appts []models.Appointment
}

func (s *stubApptRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error { return nil }
func (s *stubApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubApptRepo) ListActiveBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubApptRepo) ListBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appts {
		if a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubApptRepo) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubApptRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubApptRepo) UpdateStatus(ctx context.Context, id string, expected []models.AppointmentStatus, target models.AppointmentStatus) error {
	return nil
}

func newProjector(appts []models.Appointment) *DefaultCalendarService {
	return &DefaultCalendarService{
		ShopRepo: &stubShopRepo{shop: &models.Shop{
			ID:              "shop-1",
			SlotGranularity: 30,
			WorkingHours: []models.WorkingHours{
				{Day: time.Monday, Open: 540, Close: 1020},
				{Day: time.Tuesday, Open: 540, Close: 1020},
			},
		}},
		CatalogRepo: &stubCatalogRepo{services: []models.Service{
			{ID: "svc-1", ShopID: "shop-1", Name: "Wheel alignment"},
		}},
		ApptRepo: &stubApptRepo{appts: appts},
	}
}

func TestProjectExpandsWorkingHours(t *testing.T) {
	// Mon 2026-09-07 through Sun 2026-09-13.
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 7)

	events, err := newProjector(nil).Project(context.Background(), "shop-1", from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, models.KindWorking, events[0].Kind)
	assert.True(t, events[0].Background)
	assert.False(t, events[0].Selectable())
	assert.Equal(t, from.Add(9*time.Hour), events[0].Start)
	assert.Equal(t, from.Add(17*time.Hour), events[0].End)
	assert.Equal(t, from.AddDate(0, 0, 1).Add(9*time.Hour), events[1].Start)
}

func TestProjectOverlaysAppointments(t *testing.T) {
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	appts := []models.Appointment{
		{
			ID:        "appt-1",
			ShopID:    "shop-1",
			ServiceID: "svc-1",
			StartTime: from.Add(10 * time.Hour),
			Duration:  60,
			Status:    models.StatusConfirmed,
		},
		{
			ID:        "appt-2",
			ShopID:    "shop-1",
			ServiceID: "svc-unknown",
			StartTime: from.Add(13 * time.Hour),
			Duration:  30,
			Status:    models.StatusPending,
		},
	}

	events, err := newProjector(appts).Project(context.Background(), "shop-1", from, to)
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Sorted by start: the working background event first, then the two appointments.
	assert.Equal(t, models.KindWorking, events[0].Kind)

	confirmed := events[1]
	assert.Equal(t, "appt-1", confirmed.ID)
	assert.Equal(t, "Wheel alignment", confirmed.Title)
	assert.Equal(t, "#60a5fa", confirmed.Color)
	assert.True(t, confirmed.Selectable())

	pending := events[2]
	assert.Equal(t, "appt-2", pending.ID)
	assert.Equal(t, "Appointment", pending.Title, "unknown service falls back to a generic title")
	assert.Equal(t, "#facc15", pending.Color)
}

func TestStatusColors(t *testing.T) {
	assert.Equal(t, "#60a5fa", StatusColor(models.StatusConfirmed))
	assert.Equal(t, "#facc15", StatusColor(models.StatusPending))
	assert.Equal(t, "#cbd5e1", StatusColor(models.StatusCancelled))
	assert.Equal(t, "#cbd5e1", StatusColor(models.StatusCompleted))
}

func TestViewRange(t *testing.T) {
	// A Wednesday.
	anchor := time.Date(2026, 9, 9, 15, 30, 0, 0, time.Local)

	from, to, err := ViewRange(models.ViewDay, anchor)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 9, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.Local), to)

	from, to, err = ViewRange(models.ViewWeek, anchor)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local), from, "weeks start on Monday")
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local), to)

	from, to, err = ViewRange(models.ViewMonth, anchor)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local), to)

	_, _, err = ViewRange(models.CalendarView("year"), anchor)
	require.Error(t, err)
}
