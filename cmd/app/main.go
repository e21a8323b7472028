package main

import (
	"assoblog/internal/app"
	"assoblog/internal/model"
	"assoblog/pkg/cache"
	"assoblog/pkg/config"
	"assoblog/pkg/database"
	"assoblog/pkg/logger"
	"assoblog/pkg/queue"
	"assoblog/pkg/storage"
)

// @title           Association Blog API
// @version         1.0
// @description     Publishing platform with role-based access and post moderation.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Schema is owned by goose migrations; AutoMigrate covers dev databases
	// that never ran the migrate tool.
	if err := db.AutoMigrate(&model.IdentityModel{}, &model.UserModel{}, &model.PostModel{}); err != nil {
		log.Error("Failed to auto-migrate schema: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	// Moderation events and the gallery are optional in local setups. The
	// service degrades to synchronous-only behavior without them.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, moderation events disabled: %v", err)
		queueClient = nil
	}

	storageClient, err := storage.NewClient(cfg)
	if err != nil {
		log.Warn("S3 unavailable, gallery disabled: %v", err)
		storageClient = nil
	}

	app.Run(cfg, log, db, redisClient, queueClient, storageClient)
}
