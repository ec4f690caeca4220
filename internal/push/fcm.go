// Package push delivers lesson announcements to mobile subscribers.
package push

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

type (
	FirebaseConfig struct {
		ProjectID       string
		CredentialsFile string
		CredentialsJSON string
	}

	FCMClient interface {
		Send(ctx context.Context, message *messaging.Message) (string, error)
		SendDryRun(ctx context.Context, message *messaging.Message) (string, error)
	}

	FCMSender struct {
		client FCMClient
		dryRun bool
		log    *slog.Logger
	}
)

// NewMessagingClient initializes a Firebase app and returns its messaging
// client. Without explicit credentials application default credentials are used.
func NewMessagingClient(ctx context.Context, conf FirebaseConfig) (*messaging.Client, error) {
	var fbConf *firebase.Config
	if conf.ProjectID != "" {
		fbConf = &firebase.Config{ProjectID: conf.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConf, conf.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	return client, nil
}

// ClientOptions returns the credential options for Google API clients.
// Inline JSON wins over a credentials file.
func (c FirebaseConfig) ClientOptions() []option.ClientOption {
	switch {
	case c.CredentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(c.CredentialsJSON))}
	case c.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}
	default:
		return nil
	}
}

func NewFCMSender(client FCMClient, dryRun bool, log *slog.Logger) *FCMSender {
	return &FCMSender{
		client: client,
		dryRun: dryRun,
		log:    log,
	}
}

func (s *FCMSender) Send(ctx context.Context, msg lessons.Message) (string, error) {
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:  msg.Data,
		Topic: msg.Topic,
	}

	send := s.client.Send
	if s.dryRun {
		s.log.DebugContext(ctx, "fcm dry run", "topic", msg.Topic)
		send = s.client.SendDryRun
	}

	id, err := send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", describeFCMError(err))
	}

	return id, nil
}

func describeFCMError(err error) error {
	switch {
	case messaging.IsInvalidArgument(err):
		return fmt.Errorf("invalid message: %w", err)
	case messaging.IsQuotaExceeded(err):
		return fmt.Errorf("quota exceeded: %w", err)
	case messaging.IsUnavailable(err), messaging.IsInternal(err):
		return fmt.Errorf("service unavailable: %w", err)
	case messaging.IsSenderIDMismatch(err), messaging.IsThirdPartyAuthError(err):
		return fmt.Errorf("credentials rejected: %w", err)
	default:
		return err
	}
}
