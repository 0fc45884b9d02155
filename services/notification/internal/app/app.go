package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"syncup/pkg/cache"
	"syncup/pkg/config"
	"syncup/pkg/database"
	"syncup/pkg/jwt"
	"syncup/pkg/logger"
	"syncup/pkg/middleware"
	"syncup/pkg/queue"
	notificationHTTP "syncup/services/notification/internal/controller/http"
	"syncup/services/notification/internal/repo/persistent"
	"syncup/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "syncup/services/notification/docs" // Swagger docs
)

const taskTimeout = 10 * time.Second

type App struct {
	cfg                 *config.Config
	log                 *logger.Logger
	db                  *gorm.DB
	redisClient         *redis.Client
	queueClient         *queue.Client
	jwtService          *jwt.Service
	notificationUseCase usecase.NotificationUseCase
	httpServer          *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	// Redis is the notification store, so unlike the other services it is
	// required here.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	notificationUseCase := usecase.NewNotificationUseCase(
		persistent.NewNotificationRepository(redisClient),
		persistent.NewUserRepository(db),
		log,
	)

	return &App{
		cfg:                 cfg,
		log:                 log,
		db:                  db,
		redisClient:         redisClient,
		queueClient:         queueClient,
		jwtService:          jwt.NewService(cfg.JWTSecret),
		notificationUseCase: notificationUseCase,
	}, nil
}

func (a *App) Router() *gin.Engine {
	notificationHandler := notificationHTTP.NewNotificationHandler(a.notificationUseCase, a.jwtService, a.cfg.CORSAllowedOrigins, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		depth, err := a.queueClient.GetQueueLength()
		if err != nil {
			a.log.Warn("Failed to inspect notification queue: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "queue unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "queue_depth": depth})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute))
	notificationHandler.RegisterRoutes(api, middleware.AuthMiddleware(a.jwtService))

	return r
}

func (a *App) handleTask(task map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()
	return a.notificationUseCase.HandleTask(ctx, task)
}

func (a *App) Run() error {
	a.log.Info("Starting notification queue processor...")
	if err := a.queueClient.ConsumeNotificationTasks(a.handleTask); err != nil {
		return err
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.Router(),
	}

	go func() {
		a.log.Info("Notification service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down notification service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop consuming first so no task lands after Redis is closed.
	a.queueClient.Close()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis: %v", err)
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Notification service exited")
	return nil
}
