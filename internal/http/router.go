package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "fjelldrift/internal/config"
	h "fjelldrift/internal/http/handlers"
	"fjelldrift/internal/http/middleware"
	"fjelldrift/internal/observability/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(env.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = env.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Authenticated resident endpoints
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			// Plow bookings
			bookings := authed.Group("/bookings")
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.GetBookings)
			bookings.GET("/active", h.GetActiveBookings)
			bookings.GET("/upcoming", h.GetUpcomingBookings)
			bookings.GET("/:id", h.GetBookingByID)
			bookings.PUT("/:id", h.UpdateBooking)
			bookings.DELETE("/:id", h.DeleteBooking)

			// Sanding orders
			sanding := authed.Group("/sanding")
			sanding.POST("", h.CreateSandingOrder)
			sanding.GET("", h.GetSandingOrders)
			sanding.GET("/:id", h.GetSandingOrderByID)
			sanding.DELETE("/:id", h.DeleteSandingOrder)

			// Feedback
			feedback := authed.Group("/feedback")
			feedback.POST("", h.CreateFeedback)
			feedback.GET("", h.GetFeedback)
			feedback.GET("/:id", h.GetFeedbackByID)

			// Alerts, resident view
			authed.GET("/alerts", h.GetActiveAlerts)

			// Customer self-service
			authed.GET("/customers/:id", h.GetCustomerByID)
			authed.PUT("/customers/:id/password", h.ChangePassword)

			// Maps for the plow and sanding crews
			maps := authed.Group("/map")
			maps.GET("/plowing", h.GetPlowMap)
			maps.GET("/plowing/upcoming", h.GetUpcomingPlowMap)
			maps.GET("/sanding", h.GetSandingMap)
		}

		// Admin endpoints
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.PUT("/sanding/:id/complete", h.CompleteSandingOrder)
			admin.GET("/sanding/:id/log", h.GetSandingStatusLog)

			admin.PUT("/feedback/:id/status", h.UpdateFeedbackStatus)
			admin.PUT("/feedback/:id/hidden", h.SetFeedbackHidden)
			admin.DELETE("/feedback/:id", h.DeleteFeedback)
			admin.GET("/feedback/stats", h.GetFeedbackStats)

			admin.GET("/alerts", h.GetAlertsAdmin)
			admin.POST("/alerts", h.CreateAlert)
			admin.PUT("/alerts/:id", h.UpdateAlert)
			admin.DELETE("/alerts/:id", h.DeleteAlert)

			admin.GET("/customers", h.GetCustomers)
			admin.PUT("/customers/:id", h.UpdateCustomer)
			admin.GET("/login-history", h.LoginHistory)

			admin.GET("/reports/feedback", h.GetFeedbackReportPDF)
			admin.GET("/reports/bookings", h.GetBookingsExport)
		}
	}

	h.SetRouter(r)
	return r
}
