package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"wrenchly/config"
	appointmentRepo "wrenchly/database/repository/appointment"
	"wrenchly/models"
	"wrenchly/services/appointment"
	"wrenchly/services/tasks"

	"github.com/hibiken/asynq"
)

// InitCompletionWorker runs the async worker that completes confirmed
// appointments once their end time passes.
func InitCompletionWorker(apptSvc appointment.AppointmentService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentComplete, handleCompletionTask(apptSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(apptSvc appointment.AppointmentService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompletionHandler] invalid payload: %v", err)
			return err
		}

		actor := appointment.Actor{ID: "scheduler", Role: appointment.RoleSystem}
		_, err := apptSvc.Transition(ctx, p.AppointmentID, models.StatusCompleted, actor)

		// The appointment may have been cancelled, or completed by a
		// retried delivery, after the task was enqueued. Not a failure.
		var illegal *appointment.IllegalTransitionError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &illegal):
			log.Printf("[CompletionHandler] skipping %s: %v", p.AppointmentID, err)
			return nil
		case errors.Is(err, appointmentRepo.ErrNotFound):
			log.Printf("[CompletionHandler] appointment %s no longer exists", p.AppointmentID)
			return nil
		case errors.Is(err, appointmentRepo.ErrStatusChanged):
			log.Printf("[CompletionHandler] appointment %s changed status concurrently", p.AppointmentID)
			return nil
		default:
			log.Printf("[CompletionHandler] failed to complete %s: %v", p.AppointmentID, err)
			return err
		}
	}
}
