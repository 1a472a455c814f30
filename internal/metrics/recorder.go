// Package metrics publishes webhook delivery metrics to CloudWatch.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

var tracer = otel.Tracer("github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/metrics")

const (
	MetricDeliveries         = "Deliveries"
	MetricDeliveryFailures   = "DeliveryFailures"
	MetricDeliveryLatency    = "DeliveryLatency"
	MetricValidationFailures = "ValidationFailures"

	dimensionEventType = "EventType"
)

// Recorder records the outcome of webhook invocations.
type Recorder interface {
	// RecordDelivery records one webhook POST and how long it took.
	RecordDelivery(ctx context.Context, eventType alert.EventType, success bool, latency time.Duration) error
	// RecordValidationFailure records an invocation rejected before sending.
	RecordValidationFailure(ctx context.Context) error
}

// CloudWatchAPI defines the CloudWatch operations required for recording metrics.
type CloudWatchAPI interface {
	PutMetricData(
		ctx context.Context,
		input *cloudwatch.PutMetricDataInput,
		optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchRecorder implements Recorder with CloudWatch custom metrics.
type CloudWatchRecorder struct {
	cw        CloudWatchAPI
	namespace string
	now       func() time.Time
}

// NewCloudWatchRecorder creates a recorder writing to namespace.
func NewCloudWatchRecorder(cw CloudWatchAPI, namespace string) *CloudWatchRecorder {
	return &CloudWatchRecorder{
		cw:        cw,
		namespace: namespace,
		now:       time.Now,
	}
}

// RecordDelivery puts the delivery count, failure flag and latency in a
// single PutMetricData call.
func (r *CloudWatchRecorder) RecordDelivery(
	ctx context.Context,
	eventType alert.EventType,
	success bool,
	latency time.Duration,
) error {
	dimensions := []types.Dimension{{
		Name:  aws.String(dimensionEventType),
		Value: aws.String(string(eventType)),
	}}

	var failures float64
	if !success {
		failures = 1
	}

	return r.put(ctx, []types.MetricDatum{
		r.datum(MetricDeliveries, 1, types.StandardUnitCount, dimensions),
		r.datum(MetricDeliveryFailures, failures, types.StandardUnitCount, dimensions),
		r.datum(MetricDeliveryLatency, float64(latency.Milliseconds()), types.StandardUnitMilliseconds, dimensions),
	})
}

// RecordValidationFailure puts a single ValidationFailures count.
func (r *CloudWatchRecorder) RecordValidationFailure(ctx context.Context) error {
	return r.put(ctx, []types.MetricDatum{
		r.datum(MetricValidationFailures, 1, types.StandardUnitCount, nil),
	})
}

func (r *CloudWatchRecorder) put(ctx context.Context, data []types.MetricDatum) error {
	ctx, span := tracer.Start(ctx, "metrics.put")
	defer span.End()
	span.SetAttributes(
		attribute.String("cloudwatch.namespace", r.namespace),
		attribute.Int("cloudwatch.datum_count", len(data)),
	)

	_, err := r.cw.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(r.namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("cannot put metric data to %q: %w", r.namespace, err)
	}

	return nil
}

func (r *CloudWatchRecorder) datum(
	name string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Dimensions: dimensions,
		Timestamp:  aws.Time(r.now()),
	}
}
