package kafka

import "time"

// StockMovementEvent is emitted after every committed movement.
type StockMovementEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TransactionID string    `json:"transaction_id"`
	ProductID     uint      `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	Stock         int       `json:"stock"`
	Timestamp     time.Time `json:"timestamp"`
}

// LowStockEvent is emitted when a committed movement leaves a product below
// its reorder point.
type LowStockEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	ProductID    uint      `json:"product_id"`
	Name         string    `json:"name"`
	Stock        int       `json:"stock"`
	ReorderPoint int       `json:"reorder_point"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeMovementRecorded = "stock.movement.recorded"
	EventTypeLowStock         = "stock.low"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
	TopicStockAlerts    = "stock-alerts"
)
