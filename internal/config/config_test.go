package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/env"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "LOG_LEVEL", "LOG_LOCATION", "HTTP_TIMEOUT", "AUDIT_TARGET", "METRICS_NAMESPACE", "AWS_REGION")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultLogLocation, cfg.LogLocation)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, AuditNone, cfg.AuditTarget)
	assert.Empty(t, cfg.AWSRegion)
	assert.Empty(t, cfg.MetricsNamespace)
	assert.False(t, cfg.UsesAWS())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_LOCATION", "zabbix server log")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "zabbix server log", cfg.LogLocation)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("HTTP_TIMEOUT", "-1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
}

func TestLoad_SNSTarget(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-northeast-1")
	t.Setenv("AUDIT_TARGET", "SNS")
	t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:ap-northeast-1:123456789012:audit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AuditSNS, cfg.AuditTarget)
	assert.Equal(t, "arn:aws:sns:ap-northeast-1:123456789012:audit", cfg.SNSTopicARN)
	assert.Equal(t, "ap-northeast-1", cfg.AWSRegion)
	assert.Empty(t, cfg.EventBusARN)
	assert.True(t, cfg.UsesAWS())
}

func TestLoad_EventBridgeTarget(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AUDIT_TARGET", "eventbridge")
	t.Setenv("EVENT_BUS_ARN", "arn:aws:events:eu-west-1:123456789012:event-bus/audit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AuditEventBridge, cfg.AuditTarget)
	assert.Equal(t, "arn:aws:events:eu-west-1:123456789012:event-bus/audit", cfg.EventBusARN)
	assert.Empty(t, cfg.SNSTopicARN)
}

func TestLoad_MetricsRequireRegion(t *testing.T) {
	unsetEnv(t, "AWS_REGION", "AUDIT_TARGET")
	t.Setenv("METRICS_NAMESPACE", "Autoscaler/Webhook")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "AWS_REGION")
	assert.ErrorIs(t, err, env.ErrMissing)

	t.Setenv("AWS_REGION", "us-east-1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "Autoscaler/Webhook", cfg.MetricsNamespace)
	assert.True(t, cfg.UsesAWS())
}

func TestLoad_MissingSNSTopicARN(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AUDIT_TARGET", "sns")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SNS_TOPIC_ARN")
}

func TestLoad_MissingEventBusARN(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AUDIT_TARGET", "eventbridge")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "EVENT_BUS_ARN")
}

func TestLoad_InvalidAuditTarget(t *testing.T) {
	t.Setenv("AUDIT_TARGET", "kinesis")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid audit target")
}
