package models

// SessionState tracks where a booking session is in its flow.
type SessionState string

const (
	SessionSelectingService SessionState = "selectingService"
	SessionSelectingSlot    SessionState = "selectingSlot"
	SessionBooked           SessionState = "booked"
)

// SlotSelection is the single active (date, time) pick of a session.
type SlotSelection struct {
	Date  string `json:"date"`  // "2006-01-02"
	Start int    `json:"start"` // minutes from midnight
}

// BookingSession holds the server-side state of a customer's booking
// flow, cached between calls.
type BookingSession struct {
	SessionID  string       `json:"sessionId"`
	ShopID     string       `json:"shopId"`
	CustomerID string       `json:"customerId"`
	ServiceID  string       `json:"serviceId,omitempty"`
	State      SessionState `json:"state"`
	// WeekStart anchors the visible 7-day window. Epoch identifies the
	// window; availability computed for an older epoch is discarded.
	WeekStart    string           `json:"weekStart"`
	Epoch        int              `json:"epoch"`
	Availability map[string][]int `json:"availability,omitempty"` // date -> slot start minutes
	Selected     *SlotSelection   `json:"selected,omitempty"`
}

// DayAvailability is the wire form of one date's bookable start times.
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"` // "HH:MM", strictly increasing
}

// BookingSessionResponse is returned from session endpoints.
type BookingSessionResponse struct {
	SessionID    string            `json:"sessionId"`
	State        SessionState      `json:"state"`
	Services     []Service         `json:"services,omitempty"`
	WeekStart    string            `json:"weekStart,omitempty"`
	Availability []DayAvailability `json:"availability,omitempty"`
	Selected     *SlotSelection    `json:"selected,omitempty"`
	Booking      *Appointment      `json:"booking,omitempty"`
}
