// Package config loads the webhook configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/env"
)

type AuditTarget string

const (
	AuditNone        AuditTarget = "none"
	AuditSNS         AuditTarget = "sns"
	AuditEventBridge AuditTarget = "eventbridge"
)

const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLocation = "webhook log"
)

type Config struct {
	LogLevel    slog.Level
	LogLocation string
	HTTPTimeout time.Duration

	AWSRegion   string
	AuditTarget AuditTarget
	SNSTopicARN string
	EventBusARN string

	MetricsNamespace string
}

// UsesAWS reports whether any enabled feature needs AWS credentials.
func (c *Config) UsesAWS() bool {
	return c.AuditTarget != AuditNone || c.MetricsNamespace != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:         env.Get("LOG_LEVEL", slog.LevelInfo, env.ParseLogLevel),
		LogLocation:      env.Get("LOG_LOCATION", DefaultLogLocation, env.ParseNonEmptyString),
		HTTPTimeout:      env.Get("HTTP_TIMEOUT", DefaultHTTPTimeout, env.ParseDuration),
		MetricsNamespace: env.Get("METRICS_NAMESPACE", "", env.ParseString),
	}

	target := env.Get("AUDIT_TARGET", string(AuditNone), env.ParseLowerString)

	switch AuditTarget(target) {
	case AuditNone:
		cfg.AuditTarget = AuditNone
	case AuditSNS:
		topicARN, err := env.GetRequired("SNS_TOPIC_ARN", env.ParseNonEmptyString)
		if err != nil {
			return nil, err
		}
		cfg.AuditTarget = AuditSNS
		cfg.SNSTopicARN = topicARN
	case AuditEventBridge:
		busARN, err := env.GetRequired("EVENT_BUS_ARN", env.ParseNonEmptyString)
		if err != nil {
			return nil, err
		}
		cfg.AuditTarget = AuditEventBridge
		cfg.EventBusARN = busARN
	default:
		return nil, fmt.Errorf("invalid audit target: %s", target)
	}

	if cfg.UsesAWS() {
		region, err := env.GetRequired("AWS_REGION", env.ParseNonEmptyString)
		if err != nil {
			return nil, err
		}
		cfg.AWSRegion = region
	}

	return cfg, nil
}
