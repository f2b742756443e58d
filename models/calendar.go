package models

import "time"

// EventKind distinguishes background working-hour events from appointments.
type EventKind string

const (
	KindWorking     EventKind = "working"
	KindAppointment EventKind = "appointment"
)

// CalendarView is the zoom level of the calendar window.
type CalendarView string

const (
	ViewDay   CalendarView = "day"
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

// CalendarEvent is a renderable projection of working hours and
// appointments. It is derived, never persisted.
type CalendarEvent struct {
	ID         string            `json:"id"`
	Kind       EventKind         `json:"kind"`
	Title      string            `json:"title"`
	Start      time.Time         `json:"start"`
	End        time.Time         `json:"end"`
	Status     AppointmentStatus `json:"status,omitempty"`
	Color      string            `json:"color"`
	Background bool              `json:"background"` // renders behind and does not take selection
}

// Selectable reports whether clicking the event may trigger an action.
// Working-hour background events never do.
func (e CalendarEvent) Selectable() bool {
	return e.Kind == KindAppointment
}
