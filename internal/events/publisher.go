// Package events publishes lead lifecycle events to Redis Streams so
// downstream automations (sequencers, dashboards) can react to pipeline
// changes without polling the API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/datapoolml/outreach-crm/internal/logger"
)

// StreamName is the Redis stream carrying CRM lifecycle events.
const StreamName = "crm:lead-events"

// asyncPublishTimeout is the context timeout for async publish operations.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies what happened to a record.
type EventType string

const (
	LeadCreated        EventType = "lead.created"
	LeadUpdated        EventType = "lead.updated"
	LeadDeleted        EventType = "lead.deleted"
	LeadImported       EventType = "lead.imported"
	FundingLeadCreated EventType = "funding_lead.created"
	FundingLeadUpdated EventType = "funding_lead.updated"
	FundingLeadDeleted EventType = "funding_lead.deleted"
	FundingImported    EventType = "funding_lead.imported"
)

// LeadEvent is the stream payload. Count is set for import events.
type LeadEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	RecordID  string    `json:"record_id,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes lead events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a new event publisher.
// Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish sends an event to the Redis stream.
func (p *Publisher) Publish(ctx context.Context, event LeadEvent) error {
	if p == nil || p.client == nil {
		return nil // No-op if publisher not configured
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.String("record_id", event.RecordID),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published lead event",
			logger.String("event_type", string(event.EventType)),
			logger.String("record_id", event.RecordID),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// PublishAsync publishes an event asynchronously.
// Errors are logged but not returned.
func (p *Publisher) PublishAsync(event LeadEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("record_id", event.RecordID),
				logger.Error(err),
			)
		}
	}()
}
