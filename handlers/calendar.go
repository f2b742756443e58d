package handlers

import (
	"net/http"
	"time"

	"wrenchly/models"
	"wrenchly/services/calendar"

	"github.com/gin-gonic/gin"
)

// CalendarService is wired in main before the router starts.
var CalendarService calendar.CalendarService

const calendarDateLayout = "2006-01-02"

// GetCalendar returns the shop's events for a visible range. The range is
// either explicit (from/to) or derived from a view and an anchor date.
func GetCalendar(c *gin.Context) {
	from, to, err := calendarRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := CalendarService.Project(c.Request.Context(), c.Param("shopID"), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":   from.Format(calendarDateLayout),
		"to":     to.Format(calendarDateLayout),
		"events": events,
	})
}

func calendarRange(c *gin.Context) (time.Time, time.Time, error) {
	if fromStr, toStr := c.Query("from"), c.Query("to"); fromStr != "" || toStr != "" {
		from, err := time.ParseInLocation(calendarDateLayout, fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := time.ParseInLocation(calendarDateLayout, toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return from, to, nil
	}

	anchor := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(calendarDateLayout, dateStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		anchor = parsed
	}

	view := models.CalendarView(c.DefaultQuery("view", string(models.ViewWeek)))
	return calendar.ViewRange(view, anchor)
}
