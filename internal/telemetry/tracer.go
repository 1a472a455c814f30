// Package telemetry configures OpenTelemetry tracing exported to AWS X-Ray.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	lambdadetector "go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const (
	// ServiceName is used when the function name is not available.
	ServiceName = "zabbix-autoscaler-webhook"

	shutdownTimeout = 5 * time.Second
)

// NewTracerProvider installs a global tracer provider exporting spans over
// UDP to the X-Ray daemon, with the X-Ray propagator.
func NewTracerProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	res, err := buildResource(ctx)
	if err != nil {
		return nil, err
	}

	exp, err := xrayudp.NewSpanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot create xray udp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exp)),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return tp, nil
}

// Shutdown flushes and stops tp, logging rather than returning failures.
func Shutdown(tp *sdktrace.TracerProvider, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := tp.Shutdown(ctx); err != nil {
		logger.Error("cannot shutdown tracer provider", slog.String("error", err.Error()))
	}
}

func serviceName() string {
	if name := os.Getenv("AWS_LAMBDA_FUNCTION_NAME"); name != "" {
		return name
	}
	return ServiceName
}

func buildResource(ctx context.Context) (*resource.Resource, error) {
	lambdaResource, err := lambdadetector.NewResourceDetector().Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot detect lambda resource: %w", err)
	}

	custom := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName()),
		attribute.String("webhook.kind", "autoscaler"),
	)

	merged, err := resource.Merge(lambdaResource, custom)
	if err != nil {
		return nil, fmt.Errorf("cannot merge otel resources: %w", err)
	}

	return merged, nil
}
