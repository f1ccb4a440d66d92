package service

import (
	"context"
	"time"
)

// IngestEvent announces an accepted analytics write so the external scoring
// process can recompute profile metrics. EntityType is "transaction",
// "product" or "customer_profile".
type IngestEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing ingest events to a
// message queue.
type EventPublisher interface {
	// PublishIngestEvent publishes an ingest event for async processing.
	PublishIngestEvent(ctx context.Context, event *IngestEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
