package push

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

// StubSender logs messages instead of delivering them.
type StubSender struct {
	log *slog.Logger
}

func NewStubSender(log *slog.Logger) *StubSender {
	return &StubSender{log: log}
}

func (s *StubSender) Send(ctx context.Context, msg lessons.Message) (string, error) {
	id := "stub-" + uuid.NewString()
	s.log.InfoContext(ctx, "publish message",
		"delivery_id", id,
		"topic", msg.Topic,
		"title", msg.Title,
		"body", msg.Body,
		"data", msg.Data)
	return id, nil
}
