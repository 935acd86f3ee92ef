// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Sheimsito/picm-server/internal/adapters/db"
	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/adapters/storage"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/core/services"
	"github.com/Sheimsito/picm-server/internal/handlers"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
	"github.com/Sheimsito/picm-server/internal/pkg/config"
	"github.com/Sheimsito/picm-server/internal/pkg/logger"
	"github.com/Sheimsito/picm-server/migrations"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	appLogger := logger.SetupLogger("debug", "json")
	slogger := appLogger.Logger

	slogger.Info("starting inventory control service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	// Load configuration
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Overlay managed secrets when configured
	if cfg.AWS.SecretsName != "" {
		sm, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.AWS.SecretsName, slogger)
		if err != nil {
			slogger.Error("failed to initialize secrets manager", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := cfg.ApplySecrets(ctx, sm); err != nil {
			slogger.Error("failed to apply secrets", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Reconfigure logger with loaded settings and shipping destinations
	appLogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.LogOutputs()...)
	slogger = appLogger.Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	// Initialize dependencies
	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Run database migrations outside production
	if cfg.App.Environment != "production" {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			// Don't exit in development, just warn
		}
	}

	server := setupHTTPServer(cfg, deps, appLogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	cache          ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	authHandler       *handlers.AuthHandler
	productHandler    *handlers.ProductHandler
	supplyHandler     *handlers.SupplyHandler
	categoryHandler   *handlers.CategoryHandler
	supplierHandler   *handlers.SupplierHandler
	movementHandler   *handlers.MovementHandler
	statisticsHandler *handlers.StatisticsHandler
	reportHandler     *handlers.ReportHandler
	healthHandler     *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	productRepo := db.NewProductRepository(database, slogger)
	supplyRepo := db.NewSupplyRepository(database, slogger)
	categoryRepo := db.NewCategoryRepository(database, slogger)
	supplierRepo := db.NewSupplierRepository(database, slogger)
	userRepo := db.NewUserRepository(database, slogger)
	movementRepo := db.NewMovementRepository(database, slogger)
	statsRepo := db.NewStatisticsRepository(database, slogger)

	// Report archive. The API only presigns download links, so a missing
	// bucket degrades the status endpoint instead of blocking startup.
	var archive storage.StorageClient
	if s3Archive, err := storage.NewS3Archive(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger); err != nil {
		slogger.Warn("report archive unavailable, download links disabled",
			slog.String("error", err.Error()))
	} else {
		archive = s3Archive
	}

	// Services
	stockService := services.NewStockService(productRepo, supplyRepo, movementRepo, database, slogger)
	movementService := services.NewMovementService(movementRepo, productRepo, supplyRepo, userRepo, stockService, slogger)
	statsService := services.NewStatisticsService(statsRepo, cfg.Features.SupplyMonthly, slogger)
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, cfg.Security.JWTExpiration, slogger)

	// Handlers
	deps.authHandler = handlers.NewAuthHandler(authService, slogger)
	deps.productHandler = handlers.NewProductHandler(productRepo, stockService, slogger)
	deps.supplyHandler = handlers.NewSupplyHandler(supplyRepo, stockService, slogger)
	deps.categoryHandler = handlers.NewCategoryHandler(categoryRepo, slogger)
	deps.supplierHandler = handlers.NewSupplierHandler(supplierRepo, slogger)
	deps.movementHandler = handlers.NewMovementHandler(movementService, slogger)
	deps.statisticsHandler = handlers.NewStatisticsHandler(statsService, deps.cache, slogger)
	deps.reportHandler = handlers.NewReportHandler(movementRepo, deps.asynqClient, deps.cache, archive, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, slogger)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, appLogger *logger.Logger) *http.Server {
	slogger := appLogger.Logger
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET /api/v1/health", deps.healthHandler.Health)
	mux.HandleFunc("POST /api/v1/auth/login", deps.authHandler.Login)

	// Everything else under /api/v1 requires a valid token
	api := http.NewServeMux()
	registerAPIRoutes(api, deps)
	mux.Handle("/api/v1/", middleware.Authenticate(cfg.Security.JWTSecret, slogger)(api))

	// pprof endpoints (development only)
	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.Handle("GET /debug/pprof/", http.DefaultServeMux)
	}

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	if cfg.App.Environment != "test" {
		handler = middleware.Recovery(slogger)(handler)
		handler = middleware.Logger(appLogger)(handler)
		handler = middleware.RequestID(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerAPIRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Products
	mux.HandleFunc("GET "+apiV1+"/products", deps.productHandler.List)
	mux.HandleFunc("POST "+apiV1+"/products", deps.productHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/products/{id}", deps.productHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/products/{id}", deps.productHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/products/{id}", deps.productHandler.Delete)
	mux.HandleFunc("PUT "+apiV1+"/products/{id}/stock", deps.productHandler.UpdateStock)

	// Supplies
	mux.HandleFunc("GET "+apiV1+"/supplies", deps.supplyHandler.List)
	mux.HandleFunc("POST "+apiV1+"/supplies", deps.supplyHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/supplies/{id}", deps.supplyHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/supplies/{id}", deps.supplyHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/supplies/{id}", deps.supplyHandler.Delete)
	mux.HandleFunc("PUT "+apiV1+"/supplies/{id}/stock", deps.supplyHandler.UpdateStock)

	// Categories
	mux.HandleFunc("GET "+apiV1+"/categories", deps.categoryHandler.List)
	mux.HandleFunc("POST "+apiV1+"/categories", deps.categoryHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/categories/{id}", deps.categoryHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/categories/{id}", deps.categoryHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/categories/{id}", deps.categoryHandler.Delete)

	// Suppliers
	mux.HandleFunc("GET "+apiV1+"/suppliers", deps.supplierHandler.List)
	mux.HandleFunc("POST "+apiV1+"/suppliers", deps.supplierHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/suppliers/{id}", deps.supplierHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/suppliers/{id}", deps.supplierHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/suppliers/{id}", deps.supplierHandler.Delete)

	// Movement ledger
	mux.HandleFunc("GET "+apiV1+"/movements", deps.movementHandler.List)
	mux.HandleFunc("POST "+apiV1+"/movements/{kind}", deps.movementHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/movements/{kind}/{id}", deps.movementHandler.Get)
	mux.HandleFunc("PUT "+apiV1+"/movements/{kind}/{id}", deps.movementHandler.Update)
	mux.HandleFunc("DELETE "+apiV1+"/movements/{kind}/{id}", deps.movementHandler.Delete)

	// Statistics
	mux.HandleFunc("GET "+apiV1+"/statistics/top-products-sales", deps.statisticsHandler.TopProductsSales)
	mux.HandleFunc("GET "+apiV1+"/statistics/top-products-entries", deps.statisticsHandler.TopProductsEntries)
	mux.HandleFunc("GET "+apiV1+"/statistics/top-supplies-entries", deps.statisticsHandler.TopSuppliesEntries)
	mux.HandleFunc("GET "+apiV1+"/statistics/top-supplies-exits", deps.statisticsHandler.TopSuppliesExits)
	mux.HandleFunc("GET "+apiV1+"/statistics/products-volume", deps.statisticsHandler.ProductsVolume)
	mux.HandleFunc("GET "+apiV1+"/statistics/supplies-volume", deps.statisticsHandler.SuppliesVolume)
	mux.HandleFunc("GET "+apiV1+"/statistics/monthly-movements", deps.statisticsHandler.MonthlyMovements)
	mux.HandleFunc("GET "+apiV1+"/statistics/category-distribution", deps.statisticsHandler.CategoryDistribution)
	mux.HandleFunc("GET "+apiV1+"/statistics/total-stock", deps.statisticsHandler.TotalStock)
	mux.HandleFunc("GET "+apiV1+"/statistics/total-value", deps.statisticsHandler.TotalValue)

	// Reports
	mux.HandleFunc("GET "+apiV1+"/reports/movements/excel", deps.reportHandler.ExportExcel)
	mux.HandleFunc("POST "+apiV1+"/reports/movements", deps.reportHandler.Enqueue)
	mux.HandleFunc("GET "+apiV1+"/reports/movements/{job_id}", deps.reportHandler.Status)
}

func runMigrations(ctx context.Context, cfg *config.Config, slogger *slog.Logger) error {
	slogger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourceFS:    migrations.FS,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3)
}
