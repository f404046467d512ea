// Package events_test provides tests for the events package.
package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/datapoolml/outreach-crm/internal/events"
)

func TestPublisher_NewPublisher_RequiresClient(t *testing.T) {
	t.Helper()

	pub := events.NewPublisher(nil, nil)
	if pub != nil {
		t.Error("expected nil publisher when client is nil")
	}
}

func TestPublisher_Publish_NilReceiverIsNoOp(t *testing.T) {
	t.Helper()

	var pub *events.Publisher
	event := events.LeadEvent{
		EventType: events.LeadCreated,
		RecordID:  uuid.New().String(),
	}

	// Should not panic and return nil
	err := pub.Publish(context.Background(), event)
	if err != nil {
		t.Errorf("expected nil error for nil receiver, got: %v", err)
	}
}

func TestPublisher_PublishAsync_NilReceiverIsNoOp(t *testing.T) {
	t.Helper()

	var pub *events.Publisher
	event := events.LeadEvent{
		EventType: events.LeadImported,
		Count:     42,
	}

	// Should not panic
	pub.PublishAsync(event)

	// Give the goroutine a chance to run (though it should return immediately)
	time.Sleep(10 * time.Millisecond)
}

func TestEventTypes(t *testing.T) {
	tests := []struct {
		name      string
		eventType events.EventType
		want      string
	}{
		{"lead created", events.LeadCreated, "lead.created"},
		{"lead updated", events.LeadUpdated, "lead.updated"},
		{"lead deleted", events.LeadDeleted, "lead.deleted"},
		{"lead imported", events.LeadImported, "lead.imported"},
		{"funding lead created", events.FundingLeadCreated, "funding_lead.created"},
		{"funding lead updated", events.FundingLeadUpdated, "funding_lead.updated"},
		{"funding lead deleted", events.FundingLeadDeleted, "funding_lead.deleted"},
		{"funding imported", events.FundingImported, "funding_lead.imported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.eventType) != tt.want {
				t.Errorf("event type = %q, want %q", tt.eventType, tt.want)
			}
		})
	}
}
