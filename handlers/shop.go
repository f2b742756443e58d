package handlers

import (
	"net/http"

	"wrenchly/middleware"
	"wrenchly/models"
	"wrenchly/services/notification"
	"wrenchly/services/shop"
	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

// Wired in main before the router starts.
var (
	ShopService         shop.ShopService
	NotificationService notification.NotificationService
)

// CreateShop registers a new shop owned by the authenticated actor.
func CreateShop(c *gin.Context) {
	var input models.Shop
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor, _ := middleware.GetActor(c)
	input.OwnerID = actor.ID

	created, err := ShopService.CreateShop(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetShop returns a shop profile.
func GetShop(c *gin.Context) {
	found, err := ShopService.GetShop(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// GetMyShop returns the shop owned by the authenticated actor.
func GetMyShop(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	found, err := ShopService.GetShopByOwner(c.Request.Context(), actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// GetWorkingHours returns the shop's weekly schedule.
func GetWorkingHours(c *gin.Context) {
	hours, err := ShopService.WorkingHours(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

// SetWorkingHours replaces the shop's weekly schedule.
func SetWorkingHours(c *gin.Context) {
	var hours []models.WorkingHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := ShopService.SetWorkingHours(c.Request.Context(), c.Param("shopID"), hours); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ListServices returns the shop's catalog.
func ListServices(c *gin.Context) {
	services, err := ShopService.ListServices(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// AddService creates a catalog entry.
func AddService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc.ShopID = c.Param("shopID")

	created, err := ShopService.AddService(c.Request.Context(), &svc)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService rewrites a catalog entry.
func UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc.ShopID = c.Param("shopID")
	svc.ID = c.Param("serviceID")

	updated, err := ShopService.UpdateService(c.Request.Context(), &svc)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveService deletes a catalog entry.
func RemoveService(c *gin.Context) {
	if err := ShopService.RemoveService(c.Request.Context(), c.Param("shopID"), c.Param("serviceID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetAvailability returns the open "HH:MM" start times for one date.
func GetAvailability(c *gin.Context) {
	serviceID := c.Query("serviceId")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceId and date query parameters are required"})
		return
	}

	slots, err := BookingService.DayAvailability(c.Request.Context(), c.Param("shopID"), serviceID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	clocks := make([]string, 0, len(slots))
	for _, t := range slots {
		clocks = append(clocks, models.MinutesToClock(t))
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": clocks})
}

// RegisterShopFCMToken stores the shop's push token.
func RegisterShopFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := ShopService.RegisterFCMToken(c.Request.Context(), c.Param("shopID"), input.Token); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

// RegisterCustomerFCMToken stores the authenticated customer's push token.
func RegisterCustomerFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := NotificationService.RegisterCustomerToken(c.Request.Context(), actor.ID, input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}
