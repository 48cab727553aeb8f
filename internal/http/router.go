package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "hotelapi/internal/config"
	"hotelapi/internal/domain/models"
	h "hotelapi/internal/http/handlers"
	"hotelapi/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetAuthConfig(env.JWTSecret, env.TokenTTL)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

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

	authRequired := middleware.RequireAuth([]byte(env.JWTSecret))
	adminOnly := middleware.RequireAuthority(models.RoleAdmin)
	attendantOnly := middleware.RequireAuthority(models.RoleAttendant)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)

		// Users
		users := api.Group("/users", authRequired)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.DELETE("", adminOnly, h.DeleteAllUsers)

		// Guest occupancy lookups (front desk)
		guests := api.Group("/guests", authRequired, attendantOnly)
		guests.GET("/staying", h.GetGuestsStaying)
		guests.GET("/upcoming", h.GetGuestsUpcoming)

		// Rooms
		rooms := api.Group("/rooms", authRequired)
		rooms.GET("", h.GetRooms)
		rooms.GET("/:id", h.GetRoomByID)
		rooms.POST("", adminOnly, h.CreateRoom)
		rooms.PUT("/:id", adminOnly, h.UpdateRoom)
		rooms.DELETE("/:id", adminOnly, h.DeleteRoom)
		rooms.DELETE("", adminOnly, h.DeleteAllRooms)

		// Bookings
		bookings := api.Group("/bookings", authRequired)
		bookings.GET("", h.GetBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.POST("", h.CreateBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.PUT("/:id/checkin", h.CheckInBooking)
		bookings.PUT("/:id/checkout", h.CheckOutBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.DELETE("", adminOnly, h.DeleteAllBookings)
		bookings.GET("/:id/voucher", h.GetBookingVoucherPDF)
	}

	h.SetRouter(r)
	return r
}
