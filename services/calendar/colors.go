package calendar

import "wrenchly/models"

const (
	colorConfirmed = "#60a5fa"
	colorPending   = "#facc15"
	colorDefault   = "#cbd5e1"

	colorWorking = "#f1f5f9"
)

// StatusColor maps an appointment status to its display colour. Cancelled
// and completed appointments share the muted default.
func StatusColor(status models.AppointmentStatus) string {
	switch status {
	case models.StatusConfirmed:
		return colorConfirmed
	case models.StatusPending:
		return colorPending
	default:
		return colorDefault
	}
}
