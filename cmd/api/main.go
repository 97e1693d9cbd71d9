package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sweet-shop/internal/cache"
	"sweet-shop/internal/commands"
	"sweet-shop/internal/config"
	"sweet-shop/internal/database"
	"sweet-shop/internal/events"
	"sweet-shop/internal/handlers"
	"sweet-shop/internal/inventory"
	"sweet-shop/internal/queries"
	"sweet-shop/internal/repository"
	"sweet-shop/internal/web"
	"sweet-shop/pkg/logger"
	"sweet-shop/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "sweet-shop/docs" // Import docs for Swagger
)

// @title           Sweet Shop API
// @version         1.0
// @description     Inventory API of the sweet shop: catalogue, search, purchases, restocks and dashboard statistics.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment, cfg.ServiceName)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Sweet Shop",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.Int("low_stock_threshold", cfg.LowStockThreshold),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Sweet repository
	var repo repository.SweetRepository
	if cfg.SQLitePath != "" {
		sqliteRepo, err := repository.NewSQLiteSweetRepository(cfg.SQLitePath)
		if err != nil {
			appLogger.Fatal("Failed to open sweets database", zap.String("path", cfg.SQLitePath), zap.Error(err))
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
		appLogger.Info("✅ Sweets persisted in SQLite", zap.String("path", cfg.SQLitePath))
	} else {
		repo = repository.NewInMemorySweetRepository()
		appLogger.Info("✅ Sweets kept in memory")
	}

	store := inventory.NewStore(repo)
	if cfg.SeedSampleData {
		added, err := inventory.SeedSampleData(context.Background(), store)
		if err != nil {
			appLogger.Error("Failed to seed sample data", zap.Error(err))
		} else if added > 0 {
			appLogger.Info("Sample sweets added", zap.Int("count", added))
		}
	}

	// Stock ledger
	ledger, err := database.NewSingleWriterDB(cfg.LedgerPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open stock ledger", zap.String("path", cfg.LedgerPath), zap.Error(err))
	}
	defer ledger.Close()

	publisher := newPublisher(cfg, appLogger, ledger)
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	dashboardCache := cache.NewCache(cfg, appLogger)
	if closer, ok := dashboardCache.(io.Closer); ok {
		defer closer.Close()
	}

	cmds := commands.NewHandler(store, publisher, dashboardCache, appLogger)
	summaries := queries.NewSummaryReader(store, dashboardCache, cache.TTL(cfg.CacheTTL), appLogger)

	tmpl, err := web.Templates(cfg.CurrencySymbol)
	if err != nil {
		appLogger.Fatal("Failed to parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requestIDStore := middleware.NewCacheRequestIDStore(dashboardCache)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.IdempotencyMiddleware(requestIDStore, appLogger, cache.TTL(cfg.IdempotencyTTLSeconds)))

	handlers.RegisterAPIRoutes(v1, handlers.NewInventoryHandler(appLogger, cfg, store, cmds, summaries, ledger))
	handlers.RegisterWebRoutes(router, handlers.NewWebHandler(appLogger, cfg, store, cmds, summaries))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// newPublisher returns the Kafka publisher when enabled. Otherwise, or when
// the brokers are unreachable, events go straight to the local ledger.
func newPublisher(cfg *config.Config, appLogger *zap.Logger, ledger *database.SingleWriterDB) events.EventPublisher {
	local := events.NewInMemoryEventPublisher(appLogger, events.NewEventProcessor(ledger, appLogger))
	if !cfg.UseKafka {
		appLogger.Info("📦 Events recorded in-process")
		return local
	}

	appLogger.Info("📡 Kafka Configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_sweets", cfg.KafkaTopicSweets),
		zap.String("topic_stock", cfg.KafkaTopicStock),
		zap.String("client_id", cfg.KafkaClientID),
		zap.String("acks", cfg.KafkaAcks),
		zap.Int("retries", cfg.KafkaRetries),
	)

	publisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		return local
	}
	return publisher
}
