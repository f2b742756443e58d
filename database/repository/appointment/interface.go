// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"wrenchly/database"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository interface {
	// CreateIfFree inserts the appointment only if no pending or confirmed
	// appointment of the same shop overlaps its interval. Returns
	// ErrSlotTaken when the interval is already occupied.
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListActiveBetween returns pending/confirmed appointments of the shop
	// whose intervals intersect [from, to).
	ListActiveBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error)
	ListBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	// UpdateStatus atomically moves the appointment from one of the expected
	// statuses to the target status. Returns ErrStatusChanged when the
	// stored status no longer matches.
	UpdateStatus(ctx context.Context, id string, expected []models.AppointmentStatus, target models.AppointmentStatus) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
	// maxDuration bounds the interval-intersection scan; appointments are
	// never longer than a working day.
	maxDuration time.Duration
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll:        database.DB().Collection("appointments"),
		maxDuration: 24 * time.Hour,
	}
}
