package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
)

type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(ctx context.Context, a *alert.Alert) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, record *events.DeliveryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type RecorderMock struct {
	mock.Mock
}

func (m *RecorderMock) RecordDelivery(ctx context.Context, eventType alert.EventType, success bool, latency time.Duration) error {
	args := m.Called(ctx, eventType, success, latency)
	return args.Error(0)
}

func (m *RecorderMock) RecordValidationFailure(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
