// Package events provides the delivery record shared by the audit publishers.
package events

import (
	"time"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/dispatch"
)

// DeliveryRecord describes the outcome of one webhook invocation.
type DeliveryRecord struct {
	Timestamp        time.Time       `json:"timestamp"`
	EventID          string          `json:"eventID"`
	EventSource      int             `json:"eventSource"`
	EventType        alert.EventType `json:"eventType"`
	Source           string          `json:"source"`
	ResourceName     string          `json:"resourceName"`
	DesiredStateName string          `json:"desiredStateName,omitempty"`
	URL              string          `json:"url"`
	Success          bool            `json:"success"`
	Response         string          `json:"response,omitempty"`
	Error            string          `json:"error,omitempty"`
	DurationMillis   int64           `json:"durationMillis"`
}

// NewDeliveryRecord captures the result of sending a.
func NewDeliveryRecord(a *alert.Alert, response string, sendErr error, started time.Time) *DeliveryRecord {
	r := &DeliveryRecord{
		Timestamp:        started.UTC(),
		EventID:          a.EventID,
		EventSource:      int(a.EventSource),
		EventType:        a.EventType,
		Source:           a.Source,
		ResourceName:     a.ResourceName,
		DesiredStateName: a.DesiredStateName,
		URL:              dispatch.EndpointURL(a),
		Success:          sendErr == nil,
		Response:         response,
		DurationMillis:   time.Since(started).Milliseconds(),
	}
	if sendErr != nil {
		r.Error = sendErr.Error()
	}
	return r
}
