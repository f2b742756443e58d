package models

import (
	"fmt"
	"time"
)

// WorkingHours is one weekday's recurring open window for a shop.
// Open and Close are minutes from midnight (e.g., 480 for 8:00 AM).
// Open == Close means the shop is closed that day.
type WorkingHours struct {
	Day   time.Weekday `bson:"day" json:"day"`
	Open  int          `bson:"open" json:"open"`
	Close int          `bson:"close" json:"close"`
}

// Closed reports whether the window denotes a closed day.
func (w WorkingHours) Closed() bool {
	return w.Open == w.Close
}

// Validate checks the window invariants.
func (w WorkingHours) Validate() error {
	if w.Day < time.Sunday || w.Day > time.Saturday {
		return fmt.Errorf("invalid weekday %d", w.Day)
	}
	if w.Open < 0 || w.Close > 24*60 {
		return fmt.Errorf("working hours [%d, %d] outside the day", w.Open, w.Close)
	}
	if w.Open > w.Close {
		return fmt.Errorf("open time %d is after close time %d", w.Open, w.Close)
	}
	return nil
}

// HoursForDay returns the window configured for the given weekday, if any.
func HoursForDay(hours []WorkingHours, day time.Weekday) (WorkingHours, bool) {
	for _, w := range hours {
		if w.Day == day {
			return w, true
		}
	}
	return WorkingHours{}, false
}

// MinutesToClock renders minutes from midnight as "HH:MM".
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockToMinutes parses "HH:MM" into minutes from midnight.
func ClockToMinutes(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return h*60 + m, nil
}
