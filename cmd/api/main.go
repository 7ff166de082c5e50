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
	"github.com/scholarsource/scholarsource-backend/api/routes"
	"github.com/scholarsource/scholarsource-backend/internal/config"
	"github.com/scholarsource/scholarsource-backend/internal/handlers"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	mongorepo "github.com/scholarsource/scholarsource-backend/internal/repositories/mongodb"
	"github.com/scholarsource/scholarsource-backend/internal/services"
	"github.com/scholarsource/scholarsource-backend/internal/utils"
	"github.com/scholarsource/scholarsource-backend/pkg/mongodb"
	"github.com/scholarsource/scholarsource-backend/pkg/paygateway"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Indexes back the uniqueness guarantees the services rely on
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// Initialize the payment gateway
	var gateway paygateway.Gateway
	if cfg.Stripe.MockGateway || cfg.Stripe.SecretKey == "" {
		log.Println("Using mock payment gateway")
		gateway = paygateway.NewMockGateway()
	} else {
		gateway = paygateway.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	}

	// Initialize the image uploader; logo upload is disabled when unconfigured
	var uploader utils.ImageUploader
	if cfg.Cloudinary.CloudName != "" {
		uploader, err = utils.NewCloudinaryUploader(cfg)
		if err != nil {
			log.Printf("Cloudinary initialization failed, logo upload disabled: %v", err)
			uploader = nil
		}
	}

	// Initialize repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var scholarshipRepo repositories.ScholarshipRepository = mongorepo.NewScholarshipRepository(db)
	var applicationRepo repositories.ApplicationRepository = mongorepo.NewApplicationRepository(db)
	var paymentRepo repositories.PaymentRepository = mongorepo.NewPaymentRepository(db)
	var reviewRepo repositories.ReviewRepository = mongorepo.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	scholarshipService := services.NewScholarshipService(scholarshipRepo)
	applicationService := services.NewApplicationService(applicationRepo)
	paymentService := services.NewPaymentService(gateway, paymentRepo, applicationRepo)
	reviewService := services.NewReviewService(reviewRepo)

	// Seed the bootstrap admin account
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx); err != nil {
		log.Printf("Admin bootstrap failed: %v", err)
	}
	seedCancel()

	// Initialize handlers
	h := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService),
		Scholarship: handlers.NewScholarshipHandler(scholarshipService, reviewService, uploader),
		Application: handlers.NewApplicationHandler(applicationService),
		Payment:     handlers.NewPaymentHandler(paymentService),
		Review:      handlers.NewReviewHandler(reviewService),
	}

	router := routes.SetupRouter(cfg, h, userService)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
