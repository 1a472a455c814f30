package publish

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/config"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/events"
)

const (
	testBusARN   = "arn:aws:events:ap-northeast-1:123456789012:event-bus/autoscaler"
	testTopicARN = "arn:aws:sns:ap-northeast-1:123456789012:autoscaler-audit"
)

func newRecord(success bool) *events.DeliveryRecord {
	r := &events.DeliveryRecord{
		Timestamp:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		EventID:      "42",
		EventType:    alert.EventTypeUp,
		Source:       "default",
		ResourceName: "web",
		URL:          "https://x/up?source=default&resource_name=web",
		Success:      success,
	}
	if success {
		r.Response = `{"id":"job-1"}`
	} else {
		r.Error = "Unknown error. For more details check webhook log."
	}
	return r
}

func TestEventBridgePublisher_Publish(t *testing.T) {
	client := new(EventBridgeAPIMock)
	publisher := NewEventBridgePublisher(client, testBusARN)
	record := newRecord(true)

	client.On("PutEvents",
		mock.Anything,
		mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
			if len(in.Entries) != 1 {
				return false
			}
			e := in.Entries[0]

			var got events.DeliveryRecord
			if err := json.Unmarshal([]byte(aws.ToString(e.Detail)), &got); err != nil {
				return false
			}
			return aws.ToString(e.EventBusName) == testBusARN &&
				aws.ToString(e.Source) == eventSource &&
				aws.ToString(e.DetailType) == eventDetailType &&
				got.EventID == "42" && got.Success
		}),
		mock.AnythingOfType("[]func(*eventbridge.Options)"),
	).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	require.NoError(t, publisher.Publish(context.Background(), record))
	client.AssertExpectations(t)
}

func TestEventBridgePublisher_PutEventsError(t *testing.T) {
	client := new(EventBridgeAPIMock)
	publisher := NewEventBridgePublisher(client, testBusARN)

	client.On("PutEvents", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("throttled")).Once()

	err := publisher.Publish(context.Background(), newRecord(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	client.AssertExpectations(t)
}

func TestEventBridgePublisher_FailedEntry(t *testing.T) {
	client := new(EventBridgeAPIMock)
	publisher := NewEventBridgePublisher(client, testBusARN)

	client.On("PutEvents", mock.Anything, mock.Anything, mock.Anything).
		Return(&eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries: []ebtypes.PutEventsResultEntry{{
				ErrorCode:    aws.String("InternalFailure"),
				ErrorMessage: aws.String("try again"),
			}},
		}, nil).Once()

	err := publisher.Publish(context.Background(), newRecord(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InternalFailure - try again")
}

func TestSNSPublisher_Publish(t *testing.T) {
	client := new(SNSAPIMock)
	publisher := NewSNSPublisher(client, testTopicARN)

	client.On("Publish",
		mock.Anything,
		mock.MatchedBy(func(in *sns.PublishInput) bool {
			outcome, ok := in.MessageAttributes["outcome"]
			return ok &&
				aws.ToString(in.TopicArn) == testTopicARN &&
				aws.ToString(in.Subject) == "Autoscaler webhook up - default/web" &&
				strings.Contains(aws.ToString(in.Message), `"eventID":"42"`) &&
				aws.ToString(outcome.StringValue) == "failure"
		}),
		mock.AnythingOfType("[]func(*sns.Options)"),
	).Return(&sns.PublishOutput{}, nil).Once()

	require.NoError(t, publisher.Publish(context.Background(), newRecord(false)))
	client.AssertExpectations(t)
}

func TestSNSPublisher_Error(t *testing.T) {
	client := new(SNSAPIMock)
	publisher := NewSNSPublisher(client, testTopicARN)

	client.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("access denied")).Once()

	err := publisher.Publish(context.Background(), newRecord(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), testTopicARN)
	assert.Contains(t, err.Error(), "access denied")
}

func TestSNSPublisher_SubjectTruncated(t *testing.T) {
	record := newRecord(true)
	record.ResourceName = strings.Repeat("r", 200)

	assert.Len(t, subject(record), subjectLimit)
}

func TestNewPublisher(t *testing.T) {
	awsCfg := aws.Config{Region: "ap-northeast-1"}

	p, err := NewPublisher(awsCfg, &config.Config{AuditTarget: config.AuditNone})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPublisher(awsCfg, &config.Config{AuditTarget: config.AuditSNS, SNSTopicARN: testTopicARN})
	require.NoError(t, err)
	assert.IsType(t, &SNSPublisher{}, p)

	p, err = NewPublisher(awsCfg, &config.Config{AuditTarget: config.AuditEventBridge, EventBusARN: testBusARN})
	require.NoError(t, err)
	assert.IsType(t, &EventBridgePublisher{}, p)

	_, err = NewPublisher(awsCfg, &config.Config{AuditTarget: "kinesis"})
	assert.Error(t, err)
}
