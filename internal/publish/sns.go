package publish

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
)

// SNS rejects subjects longer than this.
const subjectLimit = 100

// SNSAPI defines required SNS operations.
type SNSAPI interface {
	Publish(
		ctx context.Context,
		input *sns.PublishInput,
		optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes delivery records to an SNS topic.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
}

// NewSNSPublisher creates a new SNS publisher.
func NewSNSPublisher(client SNSAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{
		client:   client,
		topicARN: topicARN,
	}
}

// Publish sends a delivery record as a JSON message. The outcome is exposed
// as a message attribute so subscriptions can filter on failures.
func (p *SNSPublisher) Publish(ctx context.Context, record *events.DeliveryRecord) error {
	ctx, span := tracer.Start(ctx, "publish.sns")
	defer span.End()
	span.SetAttributes(
		attribute.String("sns.topic_arn", p.topicARN),
		attribute.String("zabbix.event_id", record.EventID),
	)

	msg, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cannot marshal delivery record: %w", err)
	}

	outcome := "success"
	if !record.Success {
		outcome = "failure"
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(subject(record)),
		Message:  aws.String(string(msg)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"outcome": {
				DataType:    aws.String("String"),
				StringValue: aws.String(outcome),
			},
		},
	}

	if _, err = p.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("cannot publish to %q: %w", p.topicARN, err)
	}

	return nil
}

func subject(record *events.DeliveryRecord) string {
	s := fmt.Sprintf("Autoscaler webhook %s - %s/%s", record.EventType, record.Source, record.ResourceName)
	return alert.Truncate(s, subjectLimit)
}
