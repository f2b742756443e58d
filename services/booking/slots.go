package booking

import (
	"sort"
	"time"

	"wrenchly/models"
)

// BusyInterval is an occupied [Start, End) range in minutes from midnight.
type BusyInterval struct {
	Start int
	End   int
}

// GenerateSlots computes the bookable start times for one day.
//
// Candidates step from open to close-duration in increments of granularity,
// so every slot is aligned to the granularity grid anchored at open. A
// candidate is rejected when its [t, t+duration) interval overlaps any busy
// interval under half-open semantics. A closed day (open == close) yields
// nothing.
//
// When duration is not a multiple of granularity the last conceivable start
// before close may be unreachable; that truncation is deliberate and not an
// error.
func GenerateSlots(open, close, duration, granularity int, busy []BusyInterval) []int {
	if duration <= 0 || granularity <= 0 {
		return nil
	}
	if open == close {
		return nil
	}

	var slots []int
	for t := open; t+duration <= close; t += granularity {
		if !overlapsAny(t, t+duration, busy) {
			slots = append(slots, t)
		}
	}
	return slots
}

func overlapsAny(start, end int, busy []BusyInterval) bool {
	for _, b := range busy {
		// [start, end) overlaps [b.Start, b.End) iff start < b.End && b.Start < end.
		if start < b.End && b.Start < end {
			return true
		}
	}
	return false
}

// BusyFromAppointments projects a shop's appointments onto one day's
// minute grid, clipping intervals that cross midnight. dayStart must be
// midnight of the target day in the shop's location.
func BusyFromAppointments(appts []models.Appointment, dayStart time.Time) []BusyInterval {
	const dayMinutes = 24 * 60
	var busy []BusyInterval
	for _, a := range appts {
		if !a.Status.Active() {
			continue
		}
		start := int(a.StartTime.Sub(dayStart) / time.Minute)
		end := start + a.Duration
		if end <= 0 || start >= dayMinutes {
			continue
		}
		if start < 0 {
			start = 0
		}
		if end > dayMinutes {
			end = dayMinutes
		}
		busy = append(busy, BusyInterval{Start: start, End: end})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })
	return busy
}
