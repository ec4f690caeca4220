package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
	"github.com/Roma7-7-7/lesson-notifier/internal/push"
)

// NewNotifier builds the notifier with the sink selected by conf.
// SDK clients are created here once and reused for every event.
func NewNotifier(ctx context.Context, conf *Config, log *slog.Logger) (*lessons.Notifier, error) {
	sender, err := NewSender(ctx, conf, log)
	if err != nil {
		return nil, fmt.Errorf("create sender: %w", err)
	}

	return lessons.NewNotifier(sender, log), nil
}

func NewSender(ctx context.Context, conf *Config, log *slog.Logger) (lessons.Sender, error) {
	switch conf.Sink {
	case SinkFCM:
		client, err := push.NewMessagingClient(ctx, conf.Firebase())
		if err != nil {
			return nil, fmt.Errorf("create messaging client: %w", err)
		}
		log.InfoContext(ctx, "using fcm sink", "project_id", conf.FirebaseProjectID, "dry_run", conf.DryRun)
		return push.NewFCMSender(client, conf.DryRun, log), nil
	case SinkSNS:
		topic, err := arn.Parse(conf.SNSTopicARN)
		if err != nil {
			return nil, fmt.Errorf("parse sns topic arn %q: %w", conf.SNSTopicARN, err)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(topic.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		log.InfoContext(ctx, "using sns sink", "topic_arn", conf.SNSTopicARN)
		return push.NewSNSSender(sns.NewFromConfig(awsCfg), conf.SNSTopicARN, log), nil
	case SinkStub:
		log.WarnContext(ctx, "using stub sink, notifications are only logged")
		return push.NewStubSender(log), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", conf.Sink)
	}
}
