package booking

import (
	"context"
	"testing"
	"time"

	"wrenchly/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is a Tuesday at 08:00 local time.
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

func allWeekHours(open, close int) []models.WorkingHours {
	var hours []models.WorkingHours
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours = append(hours, models.WorkingHours{Day: d, Open: open, Close: close})
	}
	return hours
}

func newTestService(t *testing.T) (*DefaultBookingSessionService, *fakeApptRepo, *models.Shop, *models.Service) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	shop := &models.Shop{
		ID:              "shop-1",
		OwnerID:         "owner-1",
		Name:            "Northside Auto Repair",
		SlotGranularity: 30,
		WorkingHours:    allWeekHours(540, 720), // 09:00-12:00
	}
	svc := &models.Service{
		ID:       "svc-1",
		ShopID:   shop.ID,
		Name:     "Oil change",
		Price:    49.90,
		Duration: 60,
	}

	apptRepo := &fakeApptRepo{}
	booking := &DefaultBookingSessionService{
		ShopRepo:    &fakeShopRepo{shops: map[string]*models.Shop{shop.ID: shop}},
		CatalogRepo: &fakeCatalogRepo{services: map[string]*models.Service{svc.ID: svc}},
		ApptRepo:    apptRepo,
		Cache:       cache,
		Now:         func() time.Time { return testNow },
	}
	return booking, apptRepo, shop, svc
}

func findDay(t *testing.T, days []models.DayAvailability, date string) models.DayAvailability {
	t.Helper()
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("no availability entry for %s", date)
	return models.DayAvailability{}
}

func TestBookingFlow(t *testing.T) {
	ctx := context.Background()
	svc, apptRepo, shop, service := newTestService(t)

	// A confirmed booking tomorrow 10:00-11:00.
	tomorrow := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	require.NoError(t, apptRepo.CreateIfFree(ctx, &models.Appointment{
		ShopID:    shop.ID,
		ServiceID: service.ID,
		StartTime: tomorrow.Add(10 * time.Hour),
		Duration:  60,
		Status:    models.StatusConfirmed,
	}))

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionSelectingService, started.State)
	require.Len(t, started.Services, 1)

	updated, err := svc.UpdateSession(ctx, started.SessionID, service.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.SessionSelectingSlot, updated.State)
	require.Len(t, updated.Availability, 7)

	day := findDay(t, updated.Availability, "2026-09-02")
	assert.Equal(t, []string{"09:00", "11:00"}, day.Slots)

	selected, err := svc.SelectSlot(ctx, started.SessionID, "2026-09-02", "11:00")
	require.NoError(t, err)
	require.NotNil(t, selected.Selected)
	assert.Equal(t, 660, selected.Selected.Start)

	confirmed, err := svc.ConfirmBooking(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionBooked, confirmed.State)
	require.NotNil(t, confirmed.Booking)
	assert.Equal(t, models.StatusPending, confirmed.Booking.Status)
	assert.Equal(t, tomorrow.Add(11*time.Hour), confirmed.Booking.StartTime)
	assert.Equal(t, 60, confirmed.Booking.Duration)
}

func TestSelectSlotReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	_, err = svc.UpdateSession(ctx, started.SessionID, service.ID, 0)
	require.NoError(t, err)

	first, err := svc.SelectSlot(ctx, started.SessionID, "2026-09-02", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, first.Selected.Start)

	second, err := svc.SelectSlot(ctx, started.SessionID, "2026-09-03", "10:30")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-03", second.Selected.Date)
	assert.Equal(t, 630, second.Selected.Start)
}

func TestSelectSlotNotOffered(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	_, err = svc.UpdateSession(ctx, started.SessionID, service.ID, 0)
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, started.SessionID, "2026-09-02", "13:00")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestConfirmConflictKeepsSessionRetryable(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	// Two customers race for the same slot.
	first, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	_, err = svc.UpdateSession(ctx, first.SessionID, service.ID, 0)
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, first.SessionID, "2026-09-02", "09:00")
	require.NoError(t, err)

	second, err := svc.StartSession(ctx, shop.ID, "cust-2")
	require.NoError(t, err)
	_, err = svc.UpdateSession(ctx, second.SessionID, service.ID, 0)
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, second.SessionID, "2026-09-02", "09:00")
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, first.SessionID)
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, second.SessionID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// The losing session stays on slot selection with the pick cleared.
	session, err := svc.loadSession(ctx, second.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionSelectingSlot, session.State)
	assert.Nil(t, session.Selected)

	// Retrying a different slot succeeds.
	_, err = svc.UpdateSession(ctx, second.SessionID, "", 0)
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, second.SessionID, "2026-09-02", "10:00")
	require.NoError(t, err)
	confirmed, err := svc.ConfirmBooking(ctx, second.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionBooked, confirmed.State)
}

func TestConfirmTwiceRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	_, err = svc.UpdateSession(ctx, started.SessionID, service.ID, 0)
	require.NoError(t, err)
	_, err = svc.SelectSlot(ctx, started.SessionID, "2026-09-02", "09:00")
	require.NoError(t, err)
	_, err = svc.ConfirmBooking(ctx, started.SessionID)
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, started.SessionID)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestStaleAvailabilityWindowDiscarded(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	updated, err := svc.UpdateSession(ctx, started.SessionID, service.ID, 1)
	require.NoError(t, err)
	require.NotEmpty(t, updated.Availability)

	// Results computed for the superseded window carry an older epoch and
	// must not overwrite the current window.
	stale := map[string][]int{"1999-01-01": {540}}
	session, err := svc.applyAvailability(ctx, started.SessionID, 0, stale)
	require.NoError(t, err)

	assert.NotContains(t, session.Availability, "1999-01-01")
	assert.Equal(t, "2026-09-08", session.WeekStart)
}

func TestUpdateSessionRequiresService(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, _ := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)

	_, err = svc.UpdateSession(ctx, started.SessionID, "", 0)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateSessionRejectsUnevenDuration(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, _ := newTestService(t)

	broken := &models.Service{ID: "svc-2", ShopID: shop.ID, Name: "Odd job", Duration: 45}
	require.NoError(t, svc.CatalogRepo.Create(ctx, broken))

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)

	_, err = svc.UpdateSession(ctx, started.SessionID, broken.ID, 0)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestExpiredSessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.UpdateSession(ctx, "no-such-session", "svc-1", 0)
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCancelSessionDropsIt(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, _ := newTestService(t)

	started, err := svc.StartSession(ctx, shop.ID, "cust-1")
	require.NoError(t, err)
	require.NoError(t, svc.CancelSession(ctx, started.SessionID))

	_, err = svc.SelectSlot(ctx, started.SessionID, "2026-09-02", "09:00")
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDayAvailabilityTrimsPastStarts(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	// Clock at 10:15 today: 09:00-10:00 starts are gone, 10:30+ remain.
	svc.Now = func() time.Time { return time.Date(2026, 9, 1, 10, 15, 0, 0, time.Local) }

	slots, err := svc.DayAvailability(ctx, shop.ID, service.ID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []int{630, 660}, slots)
}

func TestDayAvailabilityTrimsCachedPastStarts(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	// First call at 08:00 populates the cache with the full day.
	slots, err := svc.DayAvailability(ctx, shop.ID, service.ID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []int{540, 570, 600, 630, 660}, slots)

	// A later call within the cache TTL must not re-offer starts that
	// have meanwhile slipped into the past.
	svc.Now = func() time.Time { return time.Date(2026, 9, 1, 10, 15, 0, 0, time.Local) }

	slots, err = svc.DayAvailability(ctx, shop.ID, service.ID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []int{630, 660}, slots)
}

func TestDayAvailabilityClosedDay(t *testing.T) {
	ctx := context.Background()
	svc, _, shop, service := newTestService(t)

	hours := allWeekHours(540, 720)
	hours[int(time.Wednesday)] = models.WorkingHours{Day: time.Wednesday, Open: 0, Close: 0}
	require.NoError(t, svc.ShopRepo.UpdateWorkingHours(ctx, shop.ID, hours))

	slots, err := svc.DayAvailability(ctx, shop.ID, service.ID, "2026-09-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}
