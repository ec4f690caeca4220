package trigger

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

type StreamHandler struct {
	handler      Handler
	keyAttribute string
	log          *slog.Logger
}

func NewStreamHandler(handler Handler, keyAttribute string, log *slog.Logger) *StreamHandler {
	return &StreamHandler{
		handler:      handler,
		keyAttribute: keyAttribute,
		log:          log,
	}
}

// HandleStream runs every INSERT record of a DynamoDB stream batch through the
// handler. Delivery is best effort, so the batch is never reported as failed.
func (h *StreamHandler) HandleStream(ctx context.Context, e events.DynamoDBEvent) error {
	results := make(map[string]int)

	for _, record := range e.Records {
		if record.EventName != string(events.DynamoDBOperationTypeInsert) {
			h.log.DebugContext(ctx, "skipping non insert record", "event_id", record.EventID, "event_name", record.EventName)
			continue
		}

		lessonEvent, ok := h.eventFromRecord(record.Change)
		if !ok {
			h.log.WarnContext(ctx, "record has no lesson key", "event_id", record.EventID, "key_attribute", h.keyAttribute)
			continue
		}

		outcome := h.handler.Handle(ctx, lessonEvent)
		results[outcome.Result.String()]++
	}

	h.log.InfoContext(ctx, "stream batch handled", "records", len(e.Records), "results", results)
	return nil
}

func (h *StreamHandler) eventFromRecord(change events.DynamoDBStreamRecord) (lessons.Event, bool) {
	key, ok := change.Keys[h.keyAttribute]
	if !ok {
		key, ok = change.NewImage[h.keyAttribute]
	}
	if !ok || key.DataType() != events.DataTypeString || key.String() == "" {
		return lessons.Event{}, false
	}

	return lessons.Event{
		LessonID: key.String(),
		Exists:   len(change.NewImage) > 0,
		Content: lessons.Content{
			Teen:  imageTruthy(change.NewImage, teenField),
			Adult: imageTruthy(change.NewImage, adultField),
		},
	}, true
}

func imageTruthy(image map[string]events.DynamoDBAttributeValue, field string) bool {
	v, ok := image[field]
	return ok && dynamoTruthy(v)
}
