package lessons

import (
	"context"
	"errors"
	"log/slog"
)

type Notifier struct {
	sender Sender
	log    *slog.Logger
}

func NewNotifier(sender Sender, log *slog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		log:    log,
	}
}

// Handle runs a lesson creation event through the notification pipeline.
// It never returns an error: every failure is reported through the Outcome.
func (n *Notifier) Handle(ctx context.Context, event Event) Outcome {
	log := n.log.With("lesson_id", event.LessonID)
	log.InfoContext(ctx, "new lesson created")

	date, err := ParseDate(event.LessonID)
	switch {
	case errors.Is(err, ErrInvalidFormat):
		log.WarnContext(ctx, "invalid lesson id format", "error", err)
		return skipped(ResultInvalidFormat, err)
	case err != nil:
		log.WarnContext(ctx, "invalid date from lesson id", "error", err)
		return skipped(ResultInvalidDate, err)
	}

	if !IsSunday(date) {
		log.InfoContext(ctx, "not a sunday, skipping notification", "weekday", date.Weekday().String())
		return skipped(ResultNotSunday, nil)
	}

	if !event.Exists {
		log.WarnContext(ctx, "no data in new lesson document")
		return skipped(ResultNoData, nil)
	}

	if event.Content.Empty() {
		log.InfoContext(ctx, "empty lesson, no notification")
		return skipped(ResultEmptyLesson, nil)
	}

	msg := NewMessage(event.LessonID, date)

	id, err := n.sender.Send(ctx, msg)
	if err != nil {
		log.ErrorContext(ctx, "failed to send notification", "topic", msg.Topic, "error", err)
		return Outcome{Result: ResultFailed, Message: &msg, Err: &DeliveryError{Err: err}}
	}

	log.InfoContext(ctx, "notification sent", "topic", msg.Topic, "delivery_id", id)
	return Outcome{Result: ResultSent, DeliveryID: id, Message: &msg}
}
