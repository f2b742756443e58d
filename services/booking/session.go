package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	appointmentRepo "wrenchly/database/repository/appointment"
	"wrenchly/models"
	"wrenchly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookedSessionTTL keeps a successful session readable briefly before it
// expires on its own, mirroring the auto-close after confirmation.
const bookedSessionTTL = 30 * time.Second

func sessionKey(sessionID string) string {
	return "bsession:" + sessionID
}

// StartSession opens a booking flow for a shop and returns its catalog.
// No availability is computed until a service is selected.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, shopID, customerID string) (*models.BookingSessionResponse, error) {
	shop, err := s.ShopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop %s: %w", shopID, err)
	}
	services, err := s.CatalogRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services for shop %s: %w", shop.ID, err)
	}

	session := models.BookingSession{
		SessionID:  uuid.New().String(),
		ShopID:     shop.ID,
		CustomerID: customerID,
		State:      models.SessionSelectingService,
	}
	if err := s.saveSession(ctx, &session, s.sessionTTL()); err != nil {
		return nil, err
	}

	return &models.BookingSessionResponse{
		SessionID: session.SessionID,
		State:     session.State,
		Services:  services,
	}, nil
}

// UpdateSession applies a service selection and/or week navigation, then
// recomputes the 7-day availability window. The session epoch identifies
// the window: results computed against an older epoch are discarded rather
// than overwriting newer state.
func (s *DefaultBookingSessionService) UpdateSession(ctx context.Context, sessionID, serviceID string, weekIndex int) (*models.BookingSessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if serviceID != "" {
		session.ServiceID = serviceID
	}
	if session.ServiceID == "" {
		return nil, NewValidationError("no service selected")
	}
	if weekIndex < 0 {
		weekIndex = 0
	}

	shop, err := s.ShopRepo.GetByID(ctx, session.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop %s: %w", session.ShopID, err)
	}
	svc, err := s.CatalogRepo.GetByID(ctx, session.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", session.ServiceID, err)
	}
	if svc.ShopID != shop.ID {
		return nil, NewValidationError("service does not belong to this shop")
	}
	if err := validateBookable(shop, svc); err != nil {
		return nil, err
	}

	now := s.now()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, weekIndex*s.windowDays())

	// Moving the window supersedes any previous computation and drops the
	// current selection.
	session.WeekStart = weekStart.Format(dateLayout)
	session.Epoch++
	session.Selected = nil
	session.State = models.SessionSelectingSlot
	if err := s.saveSession(ctx, session, s.sessionTTL()); err != nil {
		return nil, err
	}

	epoch := session.Epoch
	avail := s.weekAvailability(ctx, shop, svc, weekStart)

	applied, err := s.applyAvailability(ctx, sessionID, epoch, avail)
	if err != nil {
		return nil, err
	}
	return s.response(applied), nil
}

// applyAvailability stores computed availability on the session only if the
// window epoch still matches; a stale window's results are discarded.
func (s *DefaultBookingSessionService) applyAvailability(ctx context.Context, sessionID string, epoch int, avail map[string][]int) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Epoch != epoch {
		utils.GetLogger().Debug("discarding stale availability window",
			zap.String("sessionID", sessionID), zap.Int("staleEpoch", epoch), zap.Int("currentEpoch", session.Epoch))
		return session, nil
	}
	session.Availability = avail
	if err := s.saveSession(ctx, session, s.sessionTTL()); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectSlot records the single active (date, time) pick. Picking again
// replaces the previous selection.
func (s *DefaultBookingSessionService) SelectSlot(ctx context.Context, sessionID, date, clock string) (*models.BookingSessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionSelectingSlot {
		return nil, NewValidationError("no availability to select from")
	}

	start, err := models.ClockToMinutes(clock)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	offered := false
	for _, t := range session.Availability[date] {
		if t == start {
			offered = true
			break
		}
	}
	if !offered {
		return nil, NewValidationError(fmt.Sprintf("slot %s %s is not offered", date, clock))
	}

	session.Selected = &models.SlotSelection{Date: date, Start: start}
	if err := s.saveSession(ctx, session, s.sessionTTL()); err != nil {
		return nil, err
	}
	return s.response(session), nil
}

// ConfirmBooking submits the selected slot as a pending appointment. The
// repository re-runs the overlap check; losing the race surfaces a
// ConflictError and the session stays on slot selection for a retry.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, sessionID string) (*models.BookingSessionResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State == models.SessionBooked {
		return nil, NewValidationError("session already booked")
	}
	if session.Selected == nil {
		return nil, NewValidationError("no slot selected")
	}

	svc, err := s.CatalogRepo.GetByID(ctx, session.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", session.ServiceID, err)
	}

	day, err := time.ParseInLocation(dateLayout, session.Selected.Date, time.Local)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q", session.Selected.Date))
	}
	start := day.Add(time.Duration(session.Selected.Start) * time.Minute)

	appt := models.Appointment{
		ShopID:     session.ShopID,
		ServiceID:  session.ServiceID,
		CustomerID: session.CustomerID,
		StartTime:  start,
		Duration:   svc.Duration,
		Status:     models.StatusPending,
	}
	if err := s.ApptRepo.CreateIfFree(ctx, &appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			// The snapshot the customer saw is stale; drop the selection
			// and the cached day, keep the session on slot selection.
			s.invalidateAvailability(ctx, session.ShopID, session.ServiceID, session.Selected.Date)
			session.Selected = nil
			_ = s.saveSession(ctx, session, s.sessionTTL())
			return nil, NewConflictError("slot was taken by another customer, pick a different time")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.invalidateAvailability(ctx, session.ShopID, session.ServiceID, session.Selected.Date)

	session.State = models.SessionBooked
	session.Selected = nil
	session.Availability = nil
	if err := s.saveSession(ctx, session, bookedSessionTTL); err != nil {
		utils.GetLogger().Warn("failed to persist booked session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Notify != nil {
		if err := s.Notify.NotifyShopNewBooking(ctx, session.ShopID, &appt, svc.Name); err != nil {
			utils.GetLogger().Warn("new-booking push failed", zap.String("shopID", session.ShopID), zap.Error(err))
		}
	}

	resp := s.response(session)
	resp.Booking = &appt
	return resp, nil
}

// CancelSession drops the session outright.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return s.Cache.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *DefaultBookingSessionService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	raw, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *DefaultBookingSessionService) saveSession(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(session.SessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) response(session *models.BookingSession) *models.BookingSessionResponse {
	resp := &models.BookingSessionResponse{
		SessionID: session.SessionID,
		State:     session.State,
		WeekStart: session.WeekStart,
		Selected:  session.Selected,
	}
	if len(session.Availability) > 0 {
		days := make([]models.DayAvailability, 0, len(session.Availability))
		for date, slots := range session.Availability {
			day := models.DayAvailability{Date: date, Slots: make([]string, 0, len(slots))}
			for _, t := range slots {
				day.Slots = append(day.Slots, models.MinutesToClock(t))
			}
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
		resp.Availability = days
	}
	return resp
}
