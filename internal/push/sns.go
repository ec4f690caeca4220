package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

const (
	snsMessageStructure = "json"
	topicAttribute      = "topic"
)

type (
	SNSClient interface {
		Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	}

	// SNSSender fans a message out through an SNS topic with mobile push
	// endpoints subscribed to it.
	SNSSender struct {
		client   SNSClient
		topicARN string
		log      *slog.Logger
	}

	snsNotification struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	gcmPayload struct {
		Notification snsNotification  `json:"notification"`
		Data         map[string]string `json:"data"`
	}

	apnsAlert struct {
		Alert snsNotification `json:"alert"`
	}

	apnsPayload struct {
		APS  apnsAlert         `json:"aps"`
		Data map[string]string `json:"data"`
	}
)

func NewSNSSender(client SNSClient, topicARN string, log *slog.Logger) *SNSSender {
	return &SNSSender{
		client:   client,
		topicARN: topicARN,
		log:      log,
	}
}

func (s *SNSSender) Send(ctx context.Context, msg lessons.Message) (string, error) {
	body, err := snsMessageBody(msg)
	if err != nil {
		return "", fmt.Errorf("build sns message: %w", err)
	}

	s.log.DebugContext(ctx, "publish sns message", "topic_arn", s.topicARN, "topic", msg.Topic)

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn:         aws.String(s.topicARN),
		Subject:          aws.String(msg.Title),
		Message:          aws.String(body),
		MessageStructure: aws.String(snsMessageStructure),
		MessageAttributes: map[string]types.MessageAttributeValue{
			topicAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.Topic),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}

// snsMessageBody renders the per-protocol bodies SNS expects when
// MessageStructure is json. Platform bodies are themselves JSON strings.
func snsMessageBody(msg lessons.Message) (string, error) {
	notification := snsNotification{Title: msg.Title, Body: msg.Body}

	gcm, err := json.Marshal(gcmPayload{Notification: notification, Data: msg.Data})
	if err != nil {
		return "", fmt.Errorf("marshal gcm payload: %w", err)
	}

	apns, err := json.Marshal(apnsPayload{APS: apnsAlert{Alert: notification}, Data: msg.Data})
	if err != nil {
		return "", fmt.Errorf("marshal apns payload: %w", err)
	}

	body, err := json.Marshal(map[string]string{
		"default":      msg.Body,
		"GCM":          string(gcm),
		"APNS":         string(apns),
		"APNS_SANDBOX": string(apns),
	})
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}

	return string(body), nil
}
