package router

import (
	"github.com/KrishTanna28/cinnect-backend/internal/handlers"
	"github.com/KrishTanna28/cinnect-backend/internal/middleware"
	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/KrishTanna28/cinnect-backend/internal/services"
	"github.com/KrishTanna28/cinnect-backend/internal/storage"
	"github.com/KrishTanna28/cinnect-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes migrates the schema, wires repositories, services and
// handlers, and registers all application routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, logger *zap.Logger) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Community{},
		&models.CommunityMember{},
		&models.Comment{},
		&models.Review{},
		&models.Engagement{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	if err := repositories.EnsureNotificationIndexes(pgdb); err != nil {
		return err
	}

	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	communityRepo := repositories.NewPostgresCommunityRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDBName))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	reviewRepo := repositories.NewPostgresReviewRepository(pgdb)
	engagementRepo := repositories.NewPostgresEngagementRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Services ---
	engagementService := services.NewEngagementService(engagementRepo, postRepo, commentRepo, reviewRepo, logger)
	syncer := services.NewNotificationSyncer(notificationRepo, followRepo, communityRepo, userRepo, logger)
	actionService := services.NewNotificationActionService(notificationRepo, followRepo, communityRepo, logger)

	// --- Media storage ---
	var mediaStore storage.Storage
	if cfg.StorageBackend == "s3" {
		mediaStore, err = storage.NewS3Storage(cfg.S3Region, cfg.S3Bucket)
	} else {
		mediaStore, err = storage.NewLocalStorage(cfg.LocalMediaDir, cfg.LocalMediaURL)
	}
	if err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo, logger)
	communityHandler := handlers.NewCommunityHandler(communityRepo, userRepo)
	postHandler := handlers.NewPostHandler(postRepo, communityRepo, userRepo, engagementRepo, engagementService, logger)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, engagementRepo, engagementService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, commentRepo, userRepo, engagementRepo, notificationRepo, engagementService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, syncer, actionService, logger)
	uploadHandler := handlers.NewUploadHandler(mediaStore)

	// --- Unauthenticated auth routes ---
	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Public routes (optional auth for viewer flags) ---
	public := e.Group("/api")
	public.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))
	followHandler.RegisterFollowListRoutes(public)
	communityHandler.RegisterPublicCommunityRoutes(public)
	postHandler.RegisterPublicPostRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	reviewHandler.RegisterPublicReviewRoutes(public)

	// --- Protected routes ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userHandler.RegisterUserRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	communityHandler.RegisterCommunityRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	reviewHandler.RegisterReviewRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	uploadHandler.RegisterUploadRoutes(api)

	logger.Info("all routes configured")
	return nil
}
