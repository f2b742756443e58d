package routes

import (
	"time"

	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/handlers"
	"wrenchly/middleware"
	"wrenchly/services/appointment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterShopRoutes registers shop profile, schedule and catalog endpoints.
// Everything that mutates a specific shop goes through the ownership check.
func RegisterShopRoutes(r *gin.Engine, shops shopRepo.ShopRepository) {
	api := r.Group("/api/shops")
	{
		// Public read endpoints: customers browse shops before logging in.
		api.GET("/:shopID", handlers.GetShop)
		api.GET("/:shopID/working-hours", handlers.GetWorkingHours)
		api.GET("/:shopID/services", handlers.ListServices)
		api.GET("/:shopID/availability", handlers.GetAvailability)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", middleware.RequireRole(appointment.RoleShop), handlers.CreateShop)
		protected.GET("/me", middleware.RequireRole(appointment.RoleShop), handlers.GetMyShop)

		owned := protected.Group("")
		owned.Use(middleware.ShopOwnerMiddleware(shops))
		owned.GET("/:shopID/calendar", handlers.GetCalendar)
		owned.PUT("/:shopID/working-hours", handlers.SetWorkingHours)
		owned.POST("/:shopID/services", handlers.AddService)
		owned.PUT("/:shopID/services/:serviceID", handlers.UpdateService)
		owned.DELETE("/:shopID/services/:serviceID", handlers.RemoveService)
		owned.PUT("/:shopID/fcm-token", handlers.RegisterShopFCMToken)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking session flow.
func RegisterBookingRoutes(r *gin.Engine) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(appointment.RoleCustomer))
		bookingGroup.POST("/session", handlers.StartBookingSession)
		bookingGroup.PUT("/session/:sessionID", handlers.UpdateBookingSession)
		bookingGroup.PUT("/session/:sessionID/slot", handlers.SelectBookingSlot)
		bookingGroup.POST("/session/:sessionID/confirm", handlers.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", handlers.CancelBookingSession)
	}
}

// RegisterAppointmentRoutes registers appointment listing and transitions.
func RegisterAppointmentRoutes(r *gin.Engine) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", middleware.RequireRole(appointment.RoleCustomer), handlers.CreateAppointment)
		api.GET("", handlers.ListAppointments)
		api.GET("/:id", handlers.GetAppointment)
		api.PATCH("/:id/status", handlers.UpdateAppointmentStatus)
	}
}

// RegisterCustomerRoutes registers customer device endpoints.
func RegisterCustomerRoutes(r *gin.Engine) {
	api := r.Group("/api/customers")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(appointment.RoleCustomer))
		api.PUT("/fcm-token", handlers.RegisterCustomerFCMToken)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", handlers.Healthz)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, shops shopRepo.ShopRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterShopRoutes(r, shops)
	RegisterBookingRoutes(r)
	RegisterAppointmentRoutes(r)
	RegisterCustomerRoutes(r)
	RegisterHealthRoute(r)
}
