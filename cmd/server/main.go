package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	adminhttp "github.com/wyfcoding/foodordering/internal/admin/interfaces/http"
	authhttp "github.com/wyfcoding/foodordering/internal/auth/interfaces/http"
	cataloghttp "github.com/wyfcoding/foodordering/internal/catalog/interfaces/http"
	orderhttp "github.com/wyfcoding/foodordering/internal/order/interfaces/http"

	adminapp "github.com/wyfcoding/foodordering/internal/admin/application"
	authapp "github.com/wyfcoding/foodordering/internal/auth/application"
	catalogapp "github.com/wyfcoding/foodordering/internal/catalog/application"
	orderapp "github.com/wyfcoding/foodordering/internal/order/application"

	adminmysql "github.com/wyfcoding/foodordering/internal/admin/infrastructure/persistence/mysql"
	authmysql "github.com/wyfcoding/foodordering/internal/auth/infrastructure/persistence/mysql"
	catalogmysql "github.com/wyfcoding/foodordering/internal/catalog/infrastructure/persistence/mysql"
	ordermysql "github.com/wyfcoding/foodordering/internal/order/infrastructure/persistence/mysql"

	"github.com/wyfcoding/foodordering/pkg/cache"
	"github.com/wyfcoding/foodordering/pkg/config"
	"github.com/wyfcoding/foodordering/pkg/db"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"github.com/wyfcoding/foodordering/pkg/metrics"
	"github.com/wyfcoding/foodordering/pkg/middleware"
	"github.com/wyfcoding/foodordering/pkg/ratelimit"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/server/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	ctx := context.Background()

	// 3. 指标
	m := metrics.New(cfg.ServiceName)

	// 4. 数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()

	if cfg.Environment == "dev" {
		err := database.AutoMigrate(
			&authmysql.UserModel{},
			&catalogmysql.CategoryModel{},
			&catalogmysql.ProductModel{},
			&ordermysql.OrderModel{},
			&ordermysql.OrderItemModel{},
		)
		if err != nil {
			logger.Error(ctx, "failed to migrate database", "error", err)
		}
	}

	m.SetDBStatsFunc(cfg.ServiceName, database.InUseConnections)
	if err := m.Register(); err != nil {
		logger.Error(ctx, "failed to register metrics", "error", err)
	}

	// 5. Redis 与限流。
	// Redis 不可达时服务照常启动，限流中间件对无限流器的场景直接放行。
	var limiter ratelimit.RateLimiter
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Warn(ctx, "failed to init redis, rate limiting disabled", "error", err)
	} else {
		defer redisCache.Close()
		limiter = ratelimit.NewRedisRateLimiter(redisCache.GetClient())
	}

	// 6. 仓储
	userRepo := authmysql.NewUserRepository(database.DB)
	catalogRepo := catalogmysql.NewCatalogRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)
	adminRepo := adminmysql.NewAdminRepository(database.DB)

	// 7. 应用服务
	tokenSvc := authapp.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authapp.NewAuthService(userRepo, tokenSvc).WithSignupCounter(m.SignupsTotal)
	catalogSvc := catalogapp.NewCatalogQueryService(catalogRepo)
	orderCmdSvc := orderapp.NewOrderCommandService(orderRepo).WithPlacedCounter(m.OrdersPlacedTotal)
	orderQuerySvc := orderapp.NewOrderQueryService(orderRepo)
	adminSvc := adminapp.NewAdminService(adminRepo)

	// 8. HTTP 接口层
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.GinLoggingMiddleware(),
		middleware.GinRecoveryMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinMetricsMiddleware(m),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	authed := middleware.Authenticate(tokenSvc)
	adminOnly := middleware.RequireAdmin()
	rateLimited := middleware.RateLimitMiddleware(limiter, cfg.RateLimit)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "Database connection successful"})
	})

	authhttp.NewHandler(authSvc).RegisterRoutes(api, rateLimited, authed)
	cataloghttp.NewHandler(catalogSvc).RegisterRoutes(api)
	orderhttp.NewHandler(orderCmdSvc, orderQuerySvc).RegisterRoutes(api, authed)
	adminhttp.NewHandler(adminSvc).RegisterRoutes(api, authed, adminOnly)

	// 9. 启动
	g, gctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g.Go(func() error {
		logger.Info(gctx, "HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			logger.Info(gctx, "metrics server starting", "port", cfg.Metrics.Port)
			return metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
		})
	}

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(gctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(gctx, "context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
