package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingService is wired in main before the router starts.
var BookingService booking.BookingSessionService

// StartBookingSession opens a session against a shop and returns its catalog.
func StartBookingSession(c *gin.Context) {
	var input struct {
		ShopID string `json:"shopId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor, _ := middleware.GetActor(c)
	resp, err := BookingService.StartSession(c.Request.Context(), input.ShopID, actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateBookingSession selects a service and/or navigates the week window.
func UpdateBookingSession(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId"`
		WeekIndex int    `json:"weekIndex"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := BookingService.UpdateSession(c.Request.Context(), c.Param("sessionID"), input.ServiceID, input.WeekIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectBookingSlot records the picked (date, time) slot on the session.
func SelectBookingSlot(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := BookingService.SelectSlot(c.Request.Context(), c.Param("sessionID"), input.Date, input.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmBooking submits the selected slot as a pending appointment.
func ConfirmBooking(c *gin.Context) {
	resp, err := BookingService.ConfirmBooking(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CancelBookingSession drops the session.
func CancelBookingSession(c *gin.Context) {
	if err := BookingService.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
