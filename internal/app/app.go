package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogHTTP "assoblog/internal/controller/http"
	"assoblog/internal/entity"
	"assoblog/internal/repo/persistent"
	"assoblog/internal/session"
	"assoblog/internal/usecase"
	"assoblog/pkg/config"
	"assoblog/pkg/jwt"
	"assoblog/pkg/logger"
	"assoblog/pkg/middleware"
	"assoblog/pkg/queue"
	"assoblog/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "assoblog/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, storageClient *storage.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	identityRepo := persistent.NewIdentityRepository(db)
	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	// Initialize use cases
	resolver := session.NewResolver(userRepo, log)
	authUseCase := usecase.NewAuthUseCase(identityRepo, userRepo, resolver, jwtService, redisClient, log)
	moderationUseCase := usecase.NewModerationUseCase(postRepo, redisClient, queueClient, log)
	userUseCase := usecase.NewUserUseCase(userRepo, redisClient, log)

	// Initialize HTTP handlers
	authHandler := blogHTTP.NewAuthHandler(authUseCase)
	postHandler := blogHTTP.NewPostHandler(moderationUseCase, log)
	moderationHandler := blogHTTP.NewModerationHandler(moderationUseCase, log)
	userHandler := blogHTTP.NewUserHandler(userUseCase, log)
	galleryHandler := blogHTTP.NewGalleryHandler(storageClient, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public surface: registration, login and the published feed.
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService, redisClient))
	authed.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)
	}

	writer := authed.Group("")
	writer.Use(middleware.RequireRole(entity.RoleAuthor, entity.RoleAdmin))

	{
		writer.POST("/posts", postHandler.SubmitPost)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))

	{
		admin.DELETE("/posts/:id", postHandler.DeletePost)
		admin.GET("/moderation/pending", moderationHandler.GetPendingPosts)
		admin.POST("/moderation/review/:post_id", moderationHandler.ReviewPost)
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:id/role", userHandler.UpdateRole)
		admin.POST("/gallery", galleryHandler.Upload)
		admin.GET("/gallery", galleryHandler.List)
		admin.DELETE("/gallery/:key", galleryHandler.Delete)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Blog service exited")
}
