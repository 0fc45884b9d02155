package internal

import (
	"context"
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
	"syncup/pkg/s3"
	postHTTP "syncup/services/post/internal/controller/http"
	"syncup/services/post/internal/repo/persistent"
	"syncup/services/post/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "syncup/services/post/docs" // Swagger docs
)

const maxUploadMemory = 12 << 20

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without notifications)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) Router() *gin.Engine {
	postRepo := persistent.NewPostRepository(a.db)
	likeRepo := persistent.NewLikeRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)

	// A nil *queue.Client must not end up inside a non-nil interface.
	var publisher usecase.NotificationPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	postUseCase := usecase.NewPostUseCase(postRepo, likeRepo, commentRepo, a.s3Client, a.log)
	likeUseCase := usecase.NewLikeUseCase(postRepo, likeRepo, publisher, a.log)
	commentUseCase := usecase.NewCommentUseCase(postRepo, commentRepo, publisher, a.log)
	mediaUseCase := usecase.NewMediaUseCase(a.s3Client, a.log)

	postHandler := postHTTP.NewPostHandler(postUseCase, likeUseCase, commentUseCase, mediaUseCase, a.log)

	r := gin.Default()
	r.MaxMultipartMemory = maxUploadMemory

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimit := a.cfg.RateLimitPerMinute
	if a.redisClient == nil {
		rateLimit = 0
	}

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, rateLimit, time.Minute))
	postHandler.RegisterRoutes(api, middleware.AuthMiddleware(a.jwtService))

	return r
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.Router(),
	}

	go func() {
		a.log.Info("Post service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
	a.log.Info("Shutting down post service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	a.log.Info("Post service exited")
	return nil
}
