package appointment

import (
	"context"

	"wrenchly/models"
	"wrenchly/services/tasks"
	"wrenchly/utils"

	"go.uber.org/zap"
)

func (s *DefaultAppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultAppointmentService) ListForShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	return s.Repo.ListByShop(ctx, shopID)
}

func (s *DefaultAppointmentService) ListForCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

// Transition loads the appointment, runs the gate and applies the status
// change with a compare-and-set so a concurrent transition loses cleanly.
func (s *DefaultAppointmentService) Transition(ctx context.Context, id string, target models.AppointmentStatus, actor Actor) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, appt, actor); err != nil {
		return nil, err
	}

	// Idempotent no-op: already in the requested status.
	if appt.Status == target {
		return appt, nil
	}

	if err := CanTransition(appt.Status, target, actor.Role); err != nil {
		return nil, err
	}
	if target == models.StatusCompleted && s.now().Before(appt.EndTime()) {
		return nil, &IllegalTransitionError{From: appt.Status, To: target}
	}

	if err := s.Repo.UpdateStatus(ctx, id, []models.AppointmentStatus{appt.Status}, target); err != nil {
		return nil, err
	}
	previous := appt.Status
	appt.Status = target
	appt.UpdatedAt = s.now()

	s.afterTransition(ctx, appt, previous, actor)
	return appt, nil
}

// authorize binds shop actors to the appointment's shop and customer
// actors to its customer. The system actor may touch anything.
// A shop token's subject is the owner's user ID, never the shop document
// ID, so shop actors resolve through the shop's OwnerID.
func (s *DefaultAppointmentService) authorize(ctx context.Context, appt *models.Appointment, actor Actor) error {
	switch actor.Role {
	case RoleSystem:
		return nil
	case RoleShop:
		shop, err := s.ShopRepo.GetByID(ctx, appt.ShopID)
		if err != nil {
			return err
		}
		if shop.OwnerID != actor.ID {
			return &ForbiddenError{Role: actor.Role}
		}
	case RoleCustomer:
		if actor.ID != appt.CustomerID {
			return &ForbiddenError{Role: actor.Role}
		}
	default:
		return &ForbiddenError{Role: actor.Role}
	}
	return nil
}

// afterTransition runs best-effort side effects: customer pushes and the
// scheduled completion task. Failures are logged, never propagated.
func (s *DefaultAppointmentService) afterTransition(ctx context.Context, appt *models.Appointment, previous models.AppointmentStatus, actor Actor) {
	logger := utils.GetLogger()

	if s.Notify != nil && actor.Role != RoleCustomer {
		if err := s.Notify.NotifyCustomerStatusChange(ctx, appt); err != nil {
			logger.Warn("status-change push failed",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	if appt.Status == models.StatusConfirmed && s.Queue != nil {
		task, opts, err := tasks.NewCompletionTask(appt.ID, appt.EndTime())
		if err == nil {
			_, err = s.Queue.EnqueueContext(ctx, task, opts...)
		}
		if err != nil {
			logger.Warn("failed to schedule completion task",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	logger.Info("appointment status changed",
		zap.String("appointmentID", appt.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(appt.Status)),
		zap.String("actorRole", string(actor.Role)))
}
