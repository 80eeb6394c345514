package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/config"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/handler"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/middleware"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting back-office service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Project{},
		&entity.Personnel{},
		&entity.Supplier{},
		&entity.ExpenseCategory{},
		&entity.PurchaseRequest{},
		&entity.PYCLineItem{},
		&entity.PaymentRequest{},
		&entity.PaymentLineItem{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis)

	minioClient, err := initMinio(cfg.MinIO)
	if err != nil {
		zapLogger.Warn("MinIO not available, attachment upload disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, minioClient, cfg.MinIO.Bucket, cfg.MinIO.PublicBase, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initMinio(cfg config.MinIOConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// Cong trinh
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.POST("", h.Project.Create)
				projects.GET("/:id", h.Project.Get)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", h.Project.Delete)
			}

			// Nhan su
			personnel := authorized.Group("/personnel")
			{
				personnel.GET("", h.Personnel.List)
				personnel.POST("", h.Personnel.Create)
				personnel.GET("/:id", h.Personnel.Get)
				personnel.PUT("/:id", h.Personnel.Update)
				personnel.DELETE("/:id", h.Personnel.Delete)
			}

			// Nha cung cap
			suppliers := authorized.Group("/suppliers")
			{
				suppliers.GET("", h.Supplier.List)
				suppliers.POST("", h.Supplier.Create)
				suppliers.PUT("/:id", h.Supplier.Update)
				suppliers.DELETE("/:id", h.Supplier.Delete)
			}

			// Loai chi phi
			categories := authorized.Group("/expense-categories")
			{
				categories.GET("", h.ExpenseCategory.List)
				categories.POST("", h.ExpenseCategory.Create)
				categories.DELETE("/:id", h.ExpenseCategory.Delete)
			}

			// Phieu yeu cau (PYC)
			pycs := authorized.Group("/purchase-requests")
			{
				pycs.GET("", h.PYC.List)
				pycs.POST("", h.PYC.Create)
				pycs.GET("/next-sequence", h.PYC.NextSequence)
				pycs.POST("/bulk-delete", h.PYC.BulkDelete)
				pycs.GET("/:id", h.PYC.Get)
				pycs.PUT("/:id", h.PYC.Update)
				pycs.PATCH("/:id/status", h.PYC.SetStatus)
				pycs.DELETE("/:id", h.PYC.Delete)
			}

			// De nghi thanh toan (DNTT)
			dntts := authorized.Group("/payment-requests")
			{
				dntts.GET("", h.DNTT.List)
				dntts.POST("", h.DNTT.Create)
				dntts.GET("/candidates", h.DNTT.Candidates)
				dntts.GET("/export", h.DNTT.Export)
				dntts.POST("/bulk-delete", h.DNTT.BulkDelete)
				dntts.GET("/:id", h.DNTT.Get)
				dntts.PATCH("/:id/status", h.DNTT.SetStatus)
				dntts.DELETE("/:id", h.DNTT.Delete)
			}

			// File upload
			authorized.POST("/uploads", h.Upload.Upload)
		}
	}
}
