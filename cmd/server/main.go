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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shariin1057/vendor-valuate/internal/config"
	"github.com/shariin1057/vendor-valuate/internal/middleware"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/handler"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting vendor-valuate service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Vendor{},
		&entity.EvaluationTemplate{},
		&entity.Period{},
		&entity.Evaluation{},
		&entity.ConsolidatedReport{},
		&entity.AuditLog{},
		&entity.Branding{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Redis（可选，用于登出吊销）
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, token revocation disabled", zap.Error(err))
			rdb = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(
		services.Auth,
		services.User,
		services.Vendor,
		services.Template,
		services.Period,
		services.Evaluation,
		services.Dashboard,
		services.Report,
		services.Export,
		services.Evidence,
		services.Branding,
		repos.AuditLog,
	)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, services, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
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
		Logger: logger.Default.LogMode(logger.Warn),
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

func registerRoutes(r *gin.Engine, h *handler.Handlers, svc *service.Services, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// 本地证据附件
	r.Static("/uploads", cfg.Storage.LocalDir)

	jwtAuth := middleware.JWTAuth(cfg.JWT.Secret, svc.Auth.IsRevoked)

	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		v1.POST("/auth/login", h.Auth.Login)

		// 品牌配置读取无需登录，登录页使用
		v1.GET("/branding", h.Branding.GetBranding)

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(jwtAuth)
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 供应商
			vendors := authorized.Group("/vendors")
			{
				vendors.GET("", h.Vendor.ListVendors)
				vendors.GET("/:id", h.Vendor.GetVendor)
			}

			// 模板
			templates := authorized.Group("/templates")
			{
				templates.GET("", h.Template.ListTemplates)
				templates.GET("/:vendorType", h.Template.GetTemplate)
			}

			// 周期
			authorized.GET("/periods", h.Period.ListPeriods)

			// 评估
			evaluations := authorized.Group("/evaluations")
			{
				evaluations.GET("", h.Evaluation.ListEvaluations)
				evaluations.GET("/mine", h.Evaluation.MyEvaluations)
				evaluations.GET("/:id", h.Evaluation.GetEvaluation)
				evaluations.POST("", h.Evaluation.SubmitEvaluation)
				evaluations.POST("/preview", h.Evaluation.PreviewScore)
			}

			// 证据附件
			authorized.POST("/evidence", h.Evidence.UploadEvidence)

			// 工作台
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/pending", h.Dashboard.PendingVendors)
				dashboard.GET("/progress", h.Dashboard.Progress)
				dashboard.GET("/analytics", h.Dashboard.Analytics)
			}

			// 合并报告
			reports := authorized.Group("/reports")
			{
				reports.GET("", h.Report.ListReports)
				reports.GET("/:vendorId/:period", h.Report.GetReport)
				reports.GET("/:vendorId/:period/pdf", h.Report.DownloadReportPDF)
			}

			// 导出
			export := authorized.Group("/export")
			{
				export.GET("/evaluations.csv", h.Export.ExportCSV)
				export.GET("/evaluations.xlsx", h.Export.ExportXLSX)
			}

			// 管理员操作
			admin := authorized.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				users := admin.Group("/users")
				{
					users.GET("", h.User.ListUsers)
					users.GET("/:id", h.User.GetUser)
					users.POST("", h.User.CreateUser)
					users.PUT("/:id", h.User.UpdateUser)
					users.POST("/:id/toggle", h.User.ToggleUser)
				}

				admin.POST("/vendors", h.Vendor.CreateVendor)
				admin.PUT("/vendors/:id", h.Vendor.UpdateVendor)
				admin.POST("/vendors/:id/toggle", h.Vendor.ToggleVendor)
				admin.DELETE("/vendors/:id", h.Vendor.DeleteVendor)
				admin.POST("/vendors/bulk", h.Vendor.BulkUpsertVendors)

				admin.PUT("/templates", h.Template.SaveTemplate)

				admin.POST("/periods", h.Period.OpenPeriod)
				admin.POST("/periods/:id/toggle", h.Period.TogglePeriod)

				admin.GET("/audit-logs", h.Audit.ListAuditLogs)
				admin.DELETE("/audit-logs", h.Audit.ClearAuditLogs)

				admin.PUT("/branding", h.Branding.SaveBranding)
			}
		}
	}
}
