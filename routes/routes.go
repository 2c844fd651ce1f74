package routes

import (
	"net/http"
	"strings"
	"time"

	"salonbook/config"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueueMonitorPath is where the asynq dashboard is mounted.
const QueueMonitorPath = "/api/admin/queues"

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm SalonBook"})
	})
}

func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterSalonRoutes registers public browsing and owner catalogue endpoints.
func RegisterSalonRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/salons")
	{
		api.GET("", hb.Salon.ListSalons)
		api.GET("/:id", hb.Salon.GetSalon)

		owner := api.Group("")
		owner.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleSalonOwner))
		owner.PUT("/:id/services", hb.Salon.UpdateServices)
	}
}

// RegisterPaymentRoutes registers the pre-booking payment step.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleCustomer))
		api.POST("/quote", hb.Payment.Quote)
		api.POST("/intent", hb.Payment.CreateIntent)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", middleware.RequireRole(models.RoleCustomer, models.RoleAdmin), hb.Booking.CreateBooking)
		bookingGroup.GET("", hb.Booking.ListBookings)
		bookingGroup.GET("/:id", hb.Booking.GetBooking)
		bookingGroup.POST("/:id/cancel", hb.Booking.CancelBooking)
		bookingGroup.POST("/:id/complete", middleware.RequireRole(models.RoleSalonOwner, models.RoleAdmin), hb.Booking.CompleteBooking)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		adminGroup.PATCH("/bookings/:id", hb.Admin.UpdateBookingHandler)
		adminGroup.DELETE("/bookings/:id", hb.Admin.SoftDeleteBookingHandler)
		adminGroup.DELETE("/bookings/:id/purge", hb.Admin.PurgeBookingHandler)
		adminGroup.PUT("/salons/:id/approval", hb.Admin.SetSalonApprovalHandler)
		adminGroup.POST("/queue-session", middleware.IssueDashboardCookie(QueueMonitorPath, dashboardSessionTTL, config.IsProduction()))
	}

	if hb.QueueMonitor != nil {
		monitor := r.Group(QueueMonitorPath)
		monitor.Use(middleware.DashboardAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		monitor.Any("/*any", gin.WrapH(hb.QueueMonitor))
	}
}

// dashboardSessionTTL bounds the dashboard cookie. The token's own expiry
// still applies.
const dashboardSessionTTL = 8 * time.Hour

func allowedOrigins() []string {
	raw := strings.TrimSpace(config.AppConfig.AllowedOrigins)
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: len(origins) > 0 && origins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterSalonRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
