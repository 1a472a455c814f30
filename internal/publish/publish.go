// Package publish records webhook deliveries to an AWS audit target.
package publish

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.opentelemetry.io/otel"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/config"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
)

var tracer = otel.Tracer("github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/publish")

const (
	eventSource     = "zabbix.autoscaler.webhook"
	eventDetailType = "Autoscaler Webhook Delivery"
)

// Publisher publishes delivery records.
type Publisher interface {
	// Publish sends record to the configured audit target.
	Publish(ctx context.Context, record *events.DeliveryRecord) error
}

// NewPublisher creates the Publisher for the configured audit target.
// It returns nil when auditing is disabled.
func NewPublisher(awsCfg aws.Config, cfg *config.Config) (Publisher, error) {
	switch cfg.AuditTarget {
	case config.AuditNone:
		return nil, nil
	case config.AuditSNS:
		return NewSNSPublisher(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN), nil
	case config.AuditEventBridge:
		return NewEventBridgePublisher(eventbridge.NewFromConfig(awsCfg), cfg.EventBusARN), nil
	default:
		return nil, fmt.Errorf("unknown audit target: %s", cfg.AuditTarget)
	}
}
