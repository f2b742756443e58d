package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ParseStatus validates a raw status value.
func ParseStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Active reports whether the status occupies calendar time.
// Only pending and confirmed appointments block other bookings.
func (s AppointmentStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment is a booked occupation of one service-duration interval
// on a shop's calendar.
type Appointment struct {
	ID         string            `bson:"id" json:"id"`
	ShopID     string            `bson:"shopId" json:"shopId"`
	ServiceID  string            `bson:"serviceId" json:"serviceId"`
	CustomerID string            `bson:"customerId" json:"customerId"`
	StartTime  time.Time         `bson:"startTime" json:"startTime"`
	Duration   int               `bson:"duration" json:"duration"` // minutes, copied from the service at creation
	Status     AppointmentStatus `bson:"status" json:"status"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// EndTime derives the appointment end from its start and duration.
func (a Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.Duration) * time.Minute)
}

// Overlaps reports whether two appointments intersect under half-open
// interval semantics.
func (a Appointment) Overlaps(other Appointment) bool {
	return a.StartTime.Before(other.EndTime()) && other.StartTime.Before(a.EndTime())
}
