package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sweet-shop/internal/config"
	"sweet-shop/internal/database"
	"sweet-shop/internal/events"
	"sweet-shop/internal/kafka"
	"sweet-shop/pkg/logger"

	"go.uber.org/zap"
)

// The listener fills the stock ledger from Kafka when the API runs with
// USE_KAFKA=true. Both processes must point LEDGER_PATH at the same file.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment, cfg.ServiceName+"-listener")
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Ledger Listener",
		zap.String("environment", cfg.Environment),
		zap.String("ledger_path", cfg.LedgerPath),
	)

	appLogger.Info("📡 Kafka Configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_sweets", cfg.KafkaTopicSweets),
		zap.String("topic_stock", cfg.KafkaTopicStock),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	ledger, err := database.NewSingleWriterDB(cfg.LedgerPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open stock ledger", zap.Error(err))
	}
	defer ledger.Close()

	processor := events.NewEventProcessor(ledger, appLogger)

	consumer, err := kafka.NewConsumer(cfg, processor, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		appLogger.Info("📨 Starting Kafka consumer...")
		if err := consumer.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		appLogger.Error("Consumer error", zap.Error(err))
	case sig := <-quit:
		appLogger.Info("Shutting down listener", zap.String("signal", sig.String()))
		cancel()
	}

	appLogger.Info("Listener exited")
}
