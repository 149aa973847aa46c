package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/routes"
	"guesthouse-backend/scheduler"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Shared secret กับ payment gateway (fatal ถ้าไม่ตั้ง ยกเว้นเปิด relaxed mode ไว้ทดสอบ)
	secretKey := os.Getenv("PAYMENT_SECRET_KEY")
	relaxedVerify := utils.EnvBool("PAYMENT_RELAXED_VERIFY", false)
	if secretKey == "" && !relaxedVerify {
		log.Fatal("❌ ERROR: PAYMENT_SECRET_KEY environment variable is not set. Cannot verify gateway callbacks.")
	}
	if relaxedVerify {
		log.Println("⚠️  PAYMENT_RELAXED_VERIFY is enabled - checksum verification is OFF. Never run this in production.")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	pricingService := services.NewPricingService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, pricingService, availabilityService)
	paymentService := services.NewPaymentService(db, bookingService, secretKey, relaxedVerify)

	// Periodic jobs: expiration sweeper + notification dispatcher
	mailer := utils.NewSMTPMailer()
	sweeper := scheduler.NewExpirationSweeper(db, bookingService, mailer)
	dispatcher := scheduler.NewNotificationDispatcher(db, mailer)
	jobs := scheduler.New(sweeper, dispatcher)

	sweepSpec := utils.EnvOrDefault("SWEEP_CRON", "0 2 * * *")
	dispatchSpec := utils.EnvOrDefault("DISPATCH_CRON", "@hourly")
	if err := jobs.Start(sweepSpec, dispatchSpec); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	log.Printf("✅ Scheduler started (sweep %q, dispatch %q)", sweepSpec, dispatchSpec)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	availabilityController := controllers.NewAvailabilityController(availabilityService, pricingService, db)
	paymentController := controllers.NewPaymentController(paymentService)

	// Build router
	router := routes.SetupRouter(bookingController, availabilityController, paymentController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
