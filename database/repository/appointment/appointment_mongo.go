package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wrenchly/models"
)

var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken is returned when the requested interval overlaps an
	// existing pending or confirmed appointment.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrStatusChanged is returned when a status update loses the race
	// against a concurrent transition.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
)

func activeStatuses() bson.A {
	return bson.A{models.StatusPending, models.StatusConfirmed}
}

func (r *mongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		existing, err := r.listActiveBetween(sc, appt.ShopID, appt.StartTime, appt.EndTime())
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		for _, other := range existing {
			if appt.Overlaps(other) {
				return ErrSlotTaken
			}
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}

	return nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// listActiveBetween runs the intersection scan against the given context,
// which may be a session context inside a transaction. End times are not
// stored, so candidates are fetched by a bounded start-time window and
// refined in memory.
func (r *mongoAppointmentRepo) listActiveBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"shopId": shopID,
		"status": bson.M{"$in": activeStatuses()},
		"startTime": bson.M{
			"$lt":  to,
			"$gte": from.Add(-r.maxDuration),
		},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"startTime": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []models.Appointment
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}

	var appts []models.Appointment
	for _, a := range candidates {
		if a.EndTime().After(from) {
			appts = append(appts, a)
		}
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) ListActiveBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.listActiveBetween(ctx, shopID, from, to)
}

func (r *mongoAppointmentRepo) ListBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId": shopID,
		"startTime": bson.M{
			"$lt":  to,
			"$gte": from.Add(-r.maxDuration),
		},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"startTime": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []models.Appointment
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, err
	}

	var appts []models.Appointment
	for _, a := range candidates {
		if a.EndTime().After(from) {
			appts = append(appts, a)
		}
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"shopId": shopID})
}

func (r *mongoAppointmentRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

func (r *mongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"startTime": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, expected []models.AppointmentStatus, target models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exp := make(bson.A, len(expected))
	for i, s := range expected {
		exp[i] = s
	}
	filter := bson.M{"id": id, "status": bson.M{"$in": exp}}
	update := bson.M{"$set": bson.M{
		"status":    target,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing document from a lost race.
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrStatusChanged
	}
	return nil
}
