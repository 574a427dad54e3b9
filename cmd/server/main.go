package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"plateshare.backend/internal/config"
	"plateshare.backend/internal/infrastructure/jobs"
	infranotif "plateshare.backend/internal/infrastructure/notifications"
	"plateshare.backend/internal/infrastructure/repositories"
	"plateshare.backend/internal/infrastructure/verification"
	"plateshare.backend/internal/interfaces/http/handlers"
	"plateshare.backend/internal/interfaces/http/middleware"
	"plateshare.backend/internal/usecases"
	"plateshare.backend/pkg/jwt"
	"plateshare.backend/pkg/logger"
	"plateshare.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		logger.Error(context.Background(), "Failed to connect to database", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info(context.Background(), "Database connected")

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	uow := repositories.NewUnitOfWork(db)
	verifStore := verification.NewRedisStore()
	notifier := infranotif.NewLogNotifier()

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, verifStore, notifier, jwtService, sessionStore)
	postUsecase := usecases.NewPostUsecase(postRepo, userRepo, uow, notifier)
	ratingUsecase := usecases.NewRatingUsecase(ratingRepo, postRepo, userRepo, uow, notifier)

	// Handlers
	deps := routeDeps{
		authHandler:    handlers.NewAuthHandler(authUsecase),
		postHandler:    handlers.NewPostHandler(postUsecase),
		ratingHandler:  handlers.NewRatingHandler(ratingUsecase),
		authMiddleware: middleware.AuthMiddleware(jwtService, sessionStore),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerAPIV1Routes(r, deps)

	// Background maintenance
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	expiryJob := jobs.NewPostExpiryJob(postRepo)
	go expiryJob.Start(jobCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info(context.Background(), "Shutdown signal received")
		expiryJob.Stop()
		cancelJobs()
	}()

	logger.Info(context.Background(), "Starting server", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
