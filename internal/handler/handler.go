// Package handler runs one webhook invocation: parse, validate, send,
// then record the outcome.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/dispatch"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/metrics"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/publish"
)

var tracer = otel.Tracer("github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/handler")

// Handler forwards Zabbix alert parameters to the autoscaler webhook.
// Publisher and recorder are optional; a nil value disables them.
type Handler struct {
	sender    dispatch.Sender
	publisher publish.Publisher
	recorder  metrics.Recorder
	logger    *slog.Logger
}

func NewHandler(
	sender dispatch.Sender,
	publisher publish.Publisher,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sender:    sender,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Handle processes the JSON parameter object raw and returns the raw
// webhook response. Any failure aborts the invocation; nothing is retried.
func (h *Handler) Handle(ctx context.Context, raw []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "handler.handle")
	defer span.End()

	h.logger.InfoContext(ctx, "executed with params", slog.String("params", string(raw)))

	a, err := h.validate(ctx, raw)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("sending failed: %w", err)
	}

	span.SetAttributes(
		attribute.String("autoscaler.event_type", string(a.EventType)),
		attribute.String("zabbix.event_id", a.EventID),
	)

	started := time.Now()
	resp, err := h.sender.Send(ctx, a)
	latency := time.Since(started)

	h.recordDelivery(ctx, a, err == nil, latency)
	h.publish(ctx, events.NewDeliveryRecord(a, resp, err, started))

	if err != nil {
		h.logger.ErrorContext(
			ctx,
			"sending failed",
			slog.String("eventID", a.EventID),
			slog.String("url", dispatch.EndpointURL(a)),
			slog.String("error", err.Error()),
		)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("sending failed: %w", err)
	}

	h.logger.InfoContext(
		ctx,
		"webhook delivered",
		slog.String("eventID", a.EventID),
		slog.String("eventType", string(a.EventType)),
		slog.Duration("latency", latency),
	)

	return resp, nil
}

func (h *Handler) validate(ctx context.Context, raw []byte) (*alert.Alert, error) {
	params, err := alert.ParseParams(raw)
	if err == nil {
		var a *alert.Alert
		if a, err = alert.Validate(params); err == nil {
			return a, nil
		}
	}

	h.logger.WarnContext(ctx, "invalid parameters", slog.String("error", err.Error()))

	if h.recorder != nil {
		if rerr := h.recorder.RecordValidationFailure(ctx); rerr != nil {
			h.logger.WarnContext(ctx, "cannot record metrics", slog.String("error", rerr.Error()))
		}
	}

	return nil, err
}

func (h *Handler) recordDelivery(ctx context.Context, a *alert.Alert, success bool, latency time.Duration) {
	if h.recorder == nil {
		return
	}

	if err := h.recorder.RecordDelivery(ctx, a.EventType, success, latency); err != nil {
		h.logger.WarnContext(
			ctx,
			"cannot record metrics",
			slog.String("eventID", a.EventID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *Handler) publish(ctx context.Context, record *events.DeliveryRecord) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.Publish(ctx, record); err != nil {
		h.logger.WarnContext(
			ctx,
			"cannot publish delivery record",
			slog.String("eventID", record.EventID),
			slog.String("error", err.Error()),
		)
	}
}
