package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/config"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/handler"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/telemetry"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).
			Error("cannot load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	h, err := handler.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error("cannot create handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tp, err := telemetry.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("cannot initialize tracer provider", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer telemetry.Shutdown(tp, logger)

	logger.Info(
		"started zabbix autoscaler webhook",
		slog.String("auditTarget", string(cfg.AuditTarget)),
		slog.String("metricsNamespace", cfg.MetricsNamespace),
		slog.Duration("httpTimeout", cfg.HTTPTimeout),
		slog.Float64("initDurationSec", time.Since(startTime).Seconds()),
	)

	lambda.Start(
		otellambda.InstrumentHandler(
			h.HandleFunctionURL,
			otellambda.WithTracerProvider(tp),
			otellambda.WithFlusher(tp)),
	)
}
