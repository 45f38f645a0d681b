package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
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

func SetupRouter(
	rc *controllers.RoomController,
	gc *controllers.GuestController,
	resc *controllers.ReservationController,
	bc *controllers.BookingController,
	fc *controllers.FolioController,
	dc *controllers.DocumentController,
	nac *controllers.NightAuditController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

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
		api.GET("/room-types", rc.GetRoomTypes)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuestByID)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.GET("/:id/history", gc.GetGuestHistory)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", resc.GetReservations)
			reservations.POST("", resc.CreateReservation)
			reservations.GET("/:id", resc.GetReservation)
			reservations.POST("/:id/cancel", resc.CancelReservation)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.POST("/:id/extend", bc.ExtendStay)
			bookings.POST("/:id/checkout", bc.Checkout)

			bookings.GET("/:id/folio", fc.GetFolio)
			bookings.POST("/:id/charges", fc.AddCharge)
			bookings.POST("/:id/payments", fc.AddPayment)

			bookings.GET("/:id/documents", dc.ListByBooking)
		}

		checkin := api.Group("/checkin")
		{
			checkin.POST("", bc.CheckIn)
			checkin.POST("/reservation", bc.CheckInReservation)
		}

		documents := api.Group("/documents")
		{
			documents.GET("/:number", dc.GetByNumber)
			documents.GET("/:number/html", dc.GetHTMLByNumber)
		}

		api.POST("/night-audit/run", nac.Run)

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelProfile)
			settings.PUT("/hotel", controllers.UpdateHotelProfile)
			settings.GET("/taxes", controllers.GetTaxConfig)
			settings.PUT("/taxes", controllers.UpdateTaxConfig)
		}
	}

	return r
}
