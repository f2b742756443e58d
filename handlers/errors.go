package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "wrenchly/database/repository/appointment"
	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/services/appointment"
	"wrenchly/services/booking"
	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps typed service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var (
		conflict   *booking.ConflictError
		validation *booking.ValidationError
		noSession  *booking.SessionNotFoundError
		illegal    *appointment.IllegalTransitionError
		forbidden  *appointment.ForbiddenError
	)

	switch {
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", conflict.Message)
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking data", validation.Message)
	case errors.As(err, &noSession):
		utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
	case errors.As(err, &illegal):
		utils.JSONError(c, http.StatusConflict, "Illegal status transition", err.Error())
	case errors.As(err, &forbidden):
		utils.JSONError(c, http.StatusForbidden, "Not allowed", err.Error())
	case errors.Is(err, appointmentRepo.ErrSlotTaken),
		errors.Is(err, appointmentRepo.ErrStatusChanged):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, appointmentRepo.ErrNotFound),
		errors.Is(err, shopRepo.ErrNotFound),
		errors.Is(err, catalogRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
