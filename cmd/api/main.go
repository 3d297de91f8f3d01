package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"todo-calendar/configs"
	v1 "todo-calendar/internal/api/v1"
	"todo-calendar/internal/auth"
	"todo-calendar/internal/config"
	"todo-calendar/internal/middleware"
	"todo-calendar/internal/repository"
	myws "todo-calendar/internal/websocket"
	"todo-calendar/pkg/database"
	"todo-calendar/pkg/logger"
)

func main() {
	// Load config
	cfg := configs.LoadConfig()

	// Inisialisasi logger
	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		log.Fatalf("Failed to init loggers: %v", err)
	}
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// ----- Inisialisasi repository ----- //
	switch cfg.DBDriver {
	case "memory":
		config.Users = repository.NewMemoryUserStore()
		config.Tasks = repository.NewMemoryTaskStore()
		logger.SystemLogger.Warn("Using in-memory store, data is lost on restart")
	default:
		db := database.ConnectDB(cfg)
		defer db.Close()
		logger.SystemLogger.Info("Database Connected")

		// Jalankan migrasi yang belum diterapkan
		if err := repository.Migrate(db); err != nil {
			logger.ErrorLogger.Error("Migration failed", zap.Error(err))
			log.Fatalf("Migration failed: %v", err)
		}
		config.Users = repository.NewPostgresUserStore(db)
		config.Tasks = repository.NewPostgresTaskStore(db)
	}

	// Redis opsional, dipakai sebagai storage rate limiter
	var limiterStorage fiber.Storage
	if cfg.UseRedis() {
		config.RedisClient = database.ConnectRedis(cfg)
		defer config.RedisClient.Close()
		limiterStorage = database.NewRedisStorage(config.RedisClient, "limiter:")
		logger.SystemLogger.Info("Redis Connected")
	}

	config.Tokens = auth.NewTokenService([]byte(cfg.JWTSecret), cfg.AccessTokenLifetime, cfg.RefreshTokenLifetime)
	config.BcryptCost = cfg.BcryptCost

	// Hub WebSocket untuk event task
	config.Hub = myws.NewHub(256)
	go config.Hub.Run()
	defer config.Hub.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.FiberErrorHandler,
	})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, limiterStorage))

	// Daftarkan route API v1
	v1.RegisterRoutes(app)

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
