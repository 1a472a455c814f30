package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
)

// EventBridgeAPI defines required EventBridge operations.
type EventBridgeAPI interface {
	PutEvents(
		ctx context.Context,
		params *eventbridge.PutEventsInput,
		optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// EventBridgePublisher puts delivery records on an event bus.
type EventBridgePublisher struct {
	client      EventBridgeAPI
	eventBusARN string
}

// NewEventBridgePublisher creates a new EventBridge publisher.
func NewEventBridgePublisher(client EventBridgeAPI, eventBusARN string) *EventBridgePublisher {
	return &EventBridgePublisher{
		client:      client,
		eventBusARN: eventBusARN,
	}
}

// Publish sends a delivery record to EventBridge.
func (p *EventBridgePublisher) Publish(ctx context.Context, record *events.DeliveryRecord) error {
	ctx, span := tracer.Start(ctx, "publish.eventbridge")
	defer span.End()
	span.SetAttributes(
		attribute.String("eventbus.arn", p.eventBusARN),
		attribute.String("zabbix.event_id", record.EventID),
	)

	detail, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cannot marshal delivery record: %w", err)
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			Detail:       aws.String(string(detail)),
			DetailType:   aws.String(eventDetailType),
			EventBusName: aws.String(p.eventBusARN),
			Source:       aws.String(eventSource),
			Time:         aws.Time(record.Timestamp),
		}},
	}

	out, err := p.client.PutEvents(ctx, input)
	if err != nil {
		return fmt.Errorf("cannot put event to %q: %w", p.eventBusARN, err)
	}

	if out.FailedEntryCount > 0 && len(out.Entries) > 0 {
		entry := out.Entries[0]
		return fmt.Errorf("cannot put event to %q: %s - %s",
			p.eventBusARN, aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
	}

	return nil
}
