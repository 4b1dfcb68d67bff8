package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/tanvir-dev/versebook/backend/internal/handlers"
	"github.com/tanvir-dev/versebook/backend/internal/middleware"
	"github.com/tanvir-dev/versebook/backend/internal/repositories"
	"github.com/tanvir-dev/versebook/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config) {
	db := mgClient.Database(cfg.MongoDB)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Static serving of uploaded images
	e.Static("/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	poemRepo := repositories.NewMongoPoemRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Poem routes
	poemHandler := handlers.NewPoemHandler(poemRepo, commentRepo, userRepo)
	poemHandler.RegisterPoemRoutes(api)
	log.Println("Poem routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(poemRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, poemRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Upload routes
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir, cfg.MaxUploadMB)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload routes configured.")

	log.Println("All routes configured.")
}
