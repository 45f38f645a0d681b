package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-co-op/gocron/v2"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"frontdesk-backend/config"
	"frontdesk-backend/controllers"
	"frontdesk-backend/routes"
	"frontdesk-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("dateonly", controllers.DateOnly); err != nil {
			log.Fatalf("❌ Failed to register dateonly validator: %v", err)
		}
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	reservationService := services.NewReservationService(db, guestService)
	bookingService := services.NewBookingService(db, guestService)
	folioService := services.NewFolioService(db)
	documentService := services.NewDocumentService(db)
	checkoutService := services.NewCheckoutService(db, documentService)
	nightAuditService := services.NewNightAuditService(db)

	// Initialize controllers
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)
	reservationController := controllers.NewReservationController(reservationService)
	bookingController := controllers.NewBookingController(bookingService, checkoutService)
	folioController := controllers.NewFolioController(folioService)
	documentController := controllers.NewDocumentController(documentService)
	nightAuditController := controllers.NewNightAuditController(nightAuditService)

	// Build router
	router := routes.SetupRouter(
		roomController,
		guestController,
		reservationController,
		bookingController,
		folioController,
		documentController,
		nightAuditController,
	)

	// Nightly room rent posting shortly after midnight
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("❌ Scheduler init failed: %v", err)
	}
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 15, 0))),
		gocron.NewTask(func() {
			if _, err := nightAuditService.Run(time.Now()); err != nil {
				log.Printf("❌ Night audit run failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("❌ Scheduling night audit failed: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("⚠️  Scheduler shutdown: %v", err)
		}
	}()

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
