package handlers

import (
	"net/http"
	"time"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/appointment"

	"github.com/gin-gonic/gin"
)

// AppointmentService is wired in main before the router starts.
var AppointmentService appointment.AppointmentService

// CreateAppointment is the direct booking path: a customer posts a service
// and a start time, and the same server-side overlap check applies.
func CreateAppointment(c *gin.Context) {
	var input struct {
		ShopID    string    `json:"shopId" binding:"required"`
		ServiceID string    `json:"serviceId" binding:"required"`
		StartTime time.Time `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor, _ := middleware.GetActor(c)
	appt, err := AppointmentService.Create(c.Request.Context(), appointment.CreateRequest{
		ShopID:     input.ShopID,
		ServiceID:  input.ServiceID,
		CustomerID: actor.ID,
		StartTime:  input.StartTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointment returns one appointment visible to the actor.
func GetAppointment(c *gin.Context) {
	appt, err := AppointmentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor, _ := middleware.GetActor(c)
	if !canView(c, appt, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAppointments returns the actor's own appointments: the owned shop's
// book for shop actors, the customer's bookings for customers.
func ListAppointments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var (
		appts []models.Appointment
		err   error
	)
	switch actor.Role {
	case appointment.RoleShop:
		shop, shopErr := ShopService.GetShopByOwner(c.Request.Context(), actor.ID)
		if shopErr != nil {
			respondServiceError(c, shopErr)
			return
		}
		appts, err = AppointmentService.ListForShop(c.Request.Context(), shop.ID)
	case appointment.RoleCustomer:
		appts, err = AppointmentService.ListForCustomer(c.Request.Context(), actor.ID)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown role"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// UpdateAppointmentStatus drives a gate-mediated status transition.
func UpdateAppointmentStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	target, err := models.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, _ := middleware.GetActor(c)
	appt, err := AppointmentService.Transition(c.Request.Context(), c.Param("id"), target, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// canView resolves the shop actor's owned shop; the token subject is the
// owner's user ID, not the shop document ID.
func canView(c *gin.Context, appt *models.Appointment, actor appointment.Actor) bool {
	switch actor.Role {
	case appointment.RoleShop:
		shop, err := ShopService.GetShopByOwner(c.Request.Context(), actor.ID)
		return err == nil && shop.ID == appt.ShopID
	case appointment.RoleCustomer:
		return appt.CustomerID == actor.ID
	default:
		return false
	}
}
