package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tair/inventory-ledger/kafka"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// alertwatcher tails the stock event topics and surfaces low-stock products
// in the service logs. It is a consumer-side companion to the ledger
// service; it holds no state of its own.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "alert-watcher")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "alert-watcher")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{
		kafka.TopicStockMovements,
		kafka.TopicStockAlerts,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeMovementRecorded, handleMovement)
	consumer.RegisterHandler(kafka.EventTypeLowStock, handleLowStock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down alert watcher...")
}

func handleMovement(ctx context.Context, payload []byte) error {
	var event kafka.StockMovementEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	logger.Info(ctx).
		Str("transaction_id", event.TransactionID).
		Uint("product_id", event.ProductID).
		Str("movement_type", event.MovementType).
		Int("quantity", event.Quantity).
		Int("stock", event.Stock).
		Msg("Stock movement recorded")

	return nil
}

func handleLowStock(ctx context.Context, payload []byte) error {
	var event kafka.LowStockEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	logger.Warn(ctx).
		Uint("product_id", event.ProductID).
		Str("name", event.Name).
		Int("stock", event.Stock).
		Int("reorder_point", event.ReorderPoint).
		Msg("Product below reorder point")

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
