package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/config"
	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/database"
	"github.com/shiftmatch/staffing-api/internal/handlers"
	"github.com/shiftmatch/staffing-api/internal/middleware"
	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"github.com/shiftmatch/staffing-api/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	jobService := services.NewJobService(jobRepo, appRepo)
	appService := services.NewApplicationService(appRepo, jobRepo)
	reviewService := services.NewReviewService(reviewRepo, appRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobService, authService)
	appHandler := handlers.NewApplicationHandler(appService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Staffing Marketplace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organizer routes (protected, organizer role)
		postings := api.Group("/postings")
		postings.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleOrganizer))
		{
			postings.POST("", jobHandler.CreatePosting)
			postings.GET("", jobHandler.ListPostings)
			postings.GET("/stats", jobHandler.GetStats)
			postings.GET("/applicants", appHandler.ListApplicants)
			postings.GET("/:id", middleware.RequirePostingOwnership(), jobHandler.GetPosting)
			postings.PATCH("/:id", middleware.RequirePostingOwnership(), jobHandler.UpdatePosting)
			postings.GET("/:id/applicants", middleware.RequirePostingOwnership(), appHandler.ListApplicantsForPosting)
		}

		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.GET("", middleware.RequireRole(models.RoleStaff), appHandler.ListMine)
			applications.POST("/:id/accept", middleware.RequireRole(models.RoleOrganizer), appHandler.Accept)
			applications.POST("/:id/assign", middleware.RequireRole(models.RoleOrganizer), appHandler.Assign)
			applications.POST("/:id/reject", middleware.RequireRole(models.RoleOrganizer), appHandler.Reject)
		}

		// Staff browse/apply routes (protected, staff role)
		jobs := api.Group("/jobs")
		jobs.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleStaff))
		{
			jobs.GET("", jobHandler.ListOpenJobs)
			jobs.POST("/:id/apply", appHandler.Apply)
		}

		// Review routes (protected, organizer role)
		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleOrganizer))
		{
			reviews.POST("", reviewHandler.Submit)
			reviews.GET("/check", reviewHandler.Check)
		}
	}

	// Start server
	logger.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
