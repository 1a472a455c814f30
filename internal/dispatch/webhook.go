package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

const (
	unknownError       = "Unknown error"
	defaultLogLocation = "webhook log"
)

// HTTPClient is the subset of *http.Client used to post the webhook.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientFactory returns an HTTPClient routed through proxy, or a direct
// client when proxy is empty.
type ClientFactory func(proxy string) (HTTPClient, error)

// ResponseError is returned when the webhook answers without an id.
type ResponseError struct {
	Message     string
	Response    string
	LogLocation string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s. For more details check %s.", e.Message, e.LogLocation)
}

// WebhookSender posts alerts to the autoscaler inputs webhook.
type WebhookSender struct {
	newClient   ClientFactory
	logger      *slog.Logger
	logLocation string
}

// Option configures a WebhookSender.
type Option func(*WebhookSender)

// WithClientFactory replaces the default HTTP client construction.
func WithClientFactory(f ClientFactory) Option {
	return func(s *WebhookSender) {
		s.newClient = f
	}
}

// WithLogLocation sets where operators are pointed to in failure messages.
func WithLogLocation(location string) Option {
	return func(s *WebhookSender) {
		if location != "" {
			s.logLocation = location
		}
	}
}

// NewWebhookSender creates a WebhookSender whose default clients time out
// after timeout. A zero timeout disables the client timeout.
func NewWebhookSender(timeout time.Duration, logger *slog.Logger, opts ...Option) *WebhookSender {
	s := &WebhookSender{
		newClient:   NewHTTPClientFactory(timeout),
		logger:      logger,
		logLocation: defaultLogLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHTTPClientFactory returns a ClientFactory building instrumented
// *http.Client values.
func NewHTTPClientFactory(timeout time.Duration) ClientFactory {
	return func(proxy string) (HTTPClient, error) {
		transport := http.DefaultTransport.(*http.Transport).Clone()

		if proxy != "" {
			proxyURL, err := parseProxy(proxy)
			if err != nil {
				return nil, err
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}

		return &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		}, nil
	}
}

// Send posts the formatted alert and interprets the webhook response.
func (s *WebhookSender) Send(ctx context.Context, a *alert.Alert) (string, error) {
	ctx, span := tracer.Start(ctx, "dispatch.webhook")
	defer span.End()

	target := EndpointURL(a)
	span.SetAttributes(
		attribute.String("autoscaler.event_type", string(a.EventType)),
		attribute.String("autoscaler.resource_name", a.ResourceName),
		attribute.String("zabbix.event_id", a.EventID),
	)

	resp, err := s.post(ctx, target, a)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return resp, nil
}

func (s *WebhookSender) post(ctx context.Context, target string, a *alert.Alert) (string, error) {
	body, err := json.Marshal(BuildMessage(a))
	if err != nil {
		return "", fmt.Errorf("cannot marshal message: %w", err)
	}

	s.logger.InfoContext(
		ctx,
		"posting webhook",
		slog.String("url", target),
		slog.String("json", string(body)),
	)

	client, err := s.newClient(a.HTTPProxy)
	if err != nil {
		return "", fmt.Errorf("cannot create http client: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("cannot create request for %q: %w", target, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot post to %q: %w", target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cannot read response from %q: %w", target, err)
	}

	s.logger.InfoContext(
		ctx,
		"webhook responded",
		slog.Int("status", resp.StatusCode),
		slog.String("response", string(raw)),
	)

	return s.interpret(ctx, raw)
}

func (s *WebhookSender) interpret(ctx context.Context, raw []byte) (string, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("cannot parse response %q: %w", string(raw), err)
	}

	obj, _ := data.(map[string]any)
	if truthy(obj["id"]) {
		return string(raw), nil
	}

	message := unknownError
	if m, ok := obj["message"].(string); ok {
		message = m
	}

	s.logger.ErrorContext(
		ctx,
		"webhook rejected the request",
		slog.String("message", message),
		slog.String("response", string(raw)),
	)

	return "", &ResponseError{
		Message:     message,
		Response:    string(raw),
		LogLocation: s.logLocation,
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// parseProxy accepts both proxy URLs and bare host:port pairs.
func parseProxy(proxy string) (*url.URL, error) {
	if !strings.Contains(proxy, "://") {
		proxy = "http://" + proxy
	}

	u, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("cannot parse proxy %q: %w", proxy, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("cannot parse proxy %q: missing host", proxy)
	}
	return u, nil
}
