// Package dispatch turns a validated alert into the autoscaler webhook
// request and delivers it.
package dispatch

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

var tracer = otel.Tracer("github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/dispatch")

// Sender delivers an alert to the autoscaler webhook.
type Sender interface {
	// Send posts the alert and returns the raw response body on success.
	Send(ctx context.Context, a *alert.Alert) (string, error)
}
