package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter รับ Controller Instances เข้ามาเพื่อกำหนด Route
func SetupRouter(
	bc *controllers.BookingController,
	ac *controllers.AvailabilityController,
	pc *controllers.PaymentController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// public
		api.POST("/bookings", bc.CreateBooking)
		api.GET("/availability", ac.CheckAvailability)
		api.GET("/price", ac.CalculatePrice)

		payments := api.Group("/payments")
		{
			payments.POST("/callback", pc.Callback)
			payments.GET("/return", pc.Return)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", controllers.Logout)
		}

		// admin (ต้องมี session token)
		admin := api.Group("", middleware.RequireAdmin())
		{
			bookings := admin.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.POST("/manual", bc.CreateManualBooking)
				bookings.GET("/:ref", bc.GetBooking)
				bookings.PATCH("/:ref", bc.EditBooking)
				bookings.POST("/:ref/cancel", bc.CancelBooking)
				bookings.POST("/:ref/confirm-payment", bc.ConfirmPayment)
				bookings.DELETE("/:ref", bc.DeleteBooking)
			}

			categories := admin.Group("/room-categories")
			{
				categories.GET("", controllers.GetRoomCategories)
				categories.POST("", controllers.CreateRoomCategory)
				categories.PATCH("/:id", controllers.UpdateRoomCategory)
				categories.DELETE("/:id", controllers.DeactivateRoomCategory)
			}

			holidays := admin.Group("/holidays")
			{
				holidays.GET("", controllers.GetHolidays)
				holidays.POST("", controllers.CreateHoliday)
				holidays.DELETE("/:id", controllers.DeleteHoliday)
			}

			policies := admin.Group("/notification-policies")
			{
				policies.GET("", controllers.GetNotificationPolicies)
				policies.PATCH("/:kind", controllers.UpdateNotificationPolicy)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("", controllers.GetPropertySettings)
				settings.PUT("", controllers.UpdatePropertySettings)
			}
		}
	}

	return r
}
