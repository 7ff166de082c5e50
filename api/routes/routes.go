package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/config"
	"github.com/scholarsource/scholarsource-backend/internal/handlers"
	"github.com/scholarsource/scholarsource-backend/internal/middleware"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
)

// Handlers bundles the handlers wired into the router
type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Scholarship *handlers.ScholarshipHandler
	Application *handlers.ApplicationHandler
	Payment     *handlers.PaymentHandler
	Review      *handlers.ReviewHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h Handlers, userService services.UserService) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/token", h.Auth.IssueToken)
			auth.POST("/admin/login", h.Auth.AdminLogin)
		}

		// Scholarship browsing is open to unauthenticated visitors
		scholarships := public.Group("/scholarships")
		{
			scholarships.GET("", h.Scholarship.SearchScholarships)
			scholarships.GET("/top", h.Scholarship.GetTopScholarships)
			scholarships.GET("/:id", h.Scholarship.GetScholarshipByID)
			scholarships.GET("/:id/reviews", h.Scholarship.GetScholarshipReviews)
		}

		// Checkout cancellations arrive before the user re-authenticates
		public.POST("/payments/failure", h.Payment.RecordFailure)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// User routes
		protected.GET("/users/me", h.User.GetMe)

		users := protected.Group("/users")
		users.Use(middleware.RequireRoles(userService, models.RoleAdmin))
		{
			users.GET("", h.User.GetAllUsers)
			users.GET("/count", h.User.GetUserCount)
			users.PATCH("/:id/role", h.User.UpdateRole)
			users.DELETE("/:id", h.User.DeleteUser)
		}

		// Scholarship management routes
		manage := protected.Group("/scholarships")
		manage.Use(middleware.RequireRoles(userService, models.RoleModerator, models.RoleAdmin))
		{
			manage.POST("", h.Scholarship.CreateScholarship)
			manage.PUT("/:id", h.Scholarship.UpdateScholarship)
			manage.POST("/:id/logo", h.Scholarship.UploadLogo)
		}

		admin := protected.Group("/scholarships")
		admin.Use(middleware.RequireRoles(userService, models.RoleAdmin))
		{
			admin.DELETE("/:id", h.Scholarship.DeleteScholarship)
		}

		// Application routes
		applications := protected.Group("/applications")
		{
			applications.POST("", h.Application.Apply)
			applications.GET("/my", h.Application.GetMyApplications)
			applications.PUT("/:id", h.Application.UpdateApplication)
			applications.DELETE("/:id", h.Application.CancelApplication)

			review := applications.Group("")
			review.Use(middleware.RequireRoles(userService, models.RoleModerator, models.RoleAdmin))
			{
				review.GET("", h.Application.GetAllApplications)
				review.PATCH("/:id/status", h.Application.UpdateStatus)
				review.PATCH("/:id/feedback", h.Application.SetFeedback)
			}
		}

		// Payment routes
		payments := protected.Group("/payments")
		{
			payments.POST("/checkout", h.Payment.CreateCheckoutSession)
			payments.POST("/verify", h.Payment.VerifyPayment)
		}

		// Review routes
		reviews := protected.Group("/reviews")
		{
			reviews.POST("", h.Review.CreateReview)
			reviews.GET("/my", h.Review.GetMyReviews)
			reviews.PATCH("/:id", h.Review.UpdateReview)
			reviews.DELETE("/:id", h.Review.DeleteReview)

			reviews.GET("", middleware.RequireRoles(userService, models.RoleModerator, models.RoleAdmin), h.Review.GetAllReviews)
		}
	}

	return router
}
