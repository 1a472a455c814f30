package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/config"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/dispatch"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/metrics"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/publish"
)

// NewFromConfig wires a Handler from cfg. AWS clients are only created when
// auditing or metrics are enabled.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Handler, error) {
	sender := dispatch.NewWebhookSender(
		cfg.HTTPTimeout,
		logger,
		dispatch.WithLogLocation(cfg.LogLocation),
	)

	if !cfg.UsesAWS() {
		return NewHandler(sender, nil, nil, logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("cannot load aws config: %w", err)
	}

	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	publisher, err := publish.NewPublisher(awsCfg, cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot create publisher: %w", err)
	}

	return NewHandler(sender, publisher, newRecorder(awsCfg, cfg), logger), nil
}

func newRecorder(awsCfg aws.Config, cfg *config.Config) metrics.Recorder {
	if cfg.MetricsNamespace == "" {
		return nil
	}
	return metrics.NewCloudWatchRecorder(cloudwatch.NewFromConfig(awsCfg), cfg.MetricsNamespace)
}
