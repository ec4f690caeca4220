package push

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

type mockFCMClient struct{ mock.Mock }

func (m *mockFCMClient) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *mockFCMClient) SendDryRun(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type mockSNSClient struct{ mock.Mock }

func (m *mockSNSClient) Publish(ctx context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if out, _ := args.Get(0).(*sns.PublishOutput); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

var testMessage = lessons.Message{
	Title: "New Sunday School Lesson!",
	Body:  "Lesson for 12/7/2025 is ready. Tap to study!",
	Data: map[string]string{
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
		"date":         "2025-12-7",
	},
	Topic: "all_users",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFCMSender_Send(t *testing.T) {
	expected := &messaging.Message{
		Notification: &messaging.Notification{
			Title: testMessage.Title,
			Body:  testMessage.Body,
		},
		Data:  testMessage.Data,
		Topic: "all_users",
	}

	t.Run("send", func(t *testing.T) {
		client := &mockFCMClient{}
		client.On("Send", mock.Anything, expected).Return("projects/demo/messages/1", nil).Once()

		id, err := NewFCMSender(client, false, discardLogger()).Send(context.Background(), testMessage)

		require.NoError(t, err)
		assert.Equal(t, "projects/demo/messages/1", id)
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "SendDryRun", mock.Anything, mock.Anything)
	})

	t.Run("dry run", func(t *testing.T) {
		client := &mockFCMClient{}
		client.On("SendDryRun", mock.Anything, expected).Return("projects/demo/messages/fake", nil).Once()

		id, err := NewFCMSender(client, true, discardLogger()).Send(context.Background(), testMessage)

		require.NoError(t, err)
		assert.Equal(t, "projects/demo/messages/fake", id)
		client.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("error", func(t *testing.T) {
		sendErr := errors.New("boom")
		client := &mockFCMClient{}
		client.On("Send", mock.Anything, mock.Anything).Return("", sendErr).Once()

		_, err := NewFCMSender(client, false, discardLogger()).Send(context.Background(), testMessage)

		require.ErrorIs(t, err, sendErr)
		assert.ErrorContains(t, err, "fcm send")
	})
}

func TestSNSSender_Send(t *testing.T) {
	const topicARN = "arn:aws:sns:us-east-1:123456789012:all_users"

	t.Run("publish", func(t *testing.T) {
		var input *sns.PublishInput
		client := &mockSNSClient{}
		client.On("Publish", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				input = args.Get(1).(*sns.PublishInput)
			}).
			Return(&sns.PublishOutput{MessageId: aws.String("msg-1")}, nil).Once()

		id, err := NewSNSSender(client, topicARN, discardLogger()).Send(context.Background(), testMessage)

		require.NoError(t, err)
		assert.Equal(t, "msg-1", id)
		require.NotNil(t, input)
		assert.Equal(t, topicARN, aws.ToString(input.TopicArn))
		assert.Equal(t, "json", aws.ToString(input.MessageStructure))
		assert.Equal(t, "all_users", aws.ToString(input.MessageAttributes["topic"].StringValue))

		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(aws.ToString(input.Message)), &body))
		assert.Equal(t, testMessage.Body, body["default"])

		var gcm gcmPayload
		require.NoError(t, json.Unmarshal([]byte(body["GCM"]), &gcm))
		assert.Equal(t, testMessage.Title, gcm.Notification.Title)
		assert.Equal(t, "2025-12-7", gcm.Data["date"])
		assert.Equal(t, "FLUTTER_NOTIFICATION_CLICK", gcm.Data["click_action"])
	})

	t.Run("error", func(t *testing.T) {
		pubErr := errors.New("throttled")
		client := &mockSNSClient{}
		client.On("Publish", mock.Anything, mock.Anything).Return(nil, pubErr).Once()

		_, err := NewSNSSender(client, topicARN, discardLogger()).Send(context.Background(), testMessage)

		require.ErrorIs(t, err, pubErr)
		assert.ErrorContains(t, err, "sns publish")
	})
}

func TestStubSender_Send(t *testing.T) {
	first, err := NewStubSender(discardLogger()).Send(context.Background(), testMessage)
	require.NoError(t, err)
	second, err := NewStubSender(discardLogger()).Send(context.Background(), testMessage)
	require.NoError(t, err)

	assert.Contains(t, first, "stub-")
	assert.NotEqual(t, first, second)
}
