package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

var ErrMissingDocument = errors.New("event does not reference a document")

type CloudEventHandler struct {
	handler    Handler
	collection string
	log        *slog.Logger
}

func NewCloudEventHandler(handler Handler, collection string, log *slog.Logger) *CloudEventHandler {
	return &CloudEventHandler{
		handler:    handler,
		collection: collection,
		log:        log,
	}
}

// HandleCloudEvent handles a google.cloud.firestore.document.v1.created event.
// Only payloads that cannot be understood produce an error; notification
// outcomes are logged by the handler and swallowed.
func (h *CloudEventHandler) HandleCloudEvent(ctx context.Context, e event.Event) error {
	h.log.DebugContext(ctx, "received cloud event", "id", e.ID(), "type", e.Type(), "subject", e.Subject())

	var data firestoredata.DocumentEventData
	if err := unmarshalEventData(e, &data); err != nil {
		return fmt.Errorf("decode event data: %w", err)
	}

	collection, lessonID, ok := splitDocumentPath(e.Subject())
	if !ok && data.GetValue() != nil {
		collection, lessonID, ok = splitDocumentPath(data.GetValue().GetName())
	}
	if !ok {
		return fmt.Errorf("%w: subject %q", ErrMissingDocument, e.Subject())
	}

	if collection != h.collection {
		h.log.WarnContext(ctx, "ignoring document outside lessons collection",
			"collection", collection,
			"document_id", lessonID)
		return nil
	}

	outcome := h.handler.Handle(ctx, eventFromDocument(lessonID, data.GetValue()))
	h.log.DebugContext(ctx, "cloud event handled", "lesson_id", lessonID, "result", outcome.Result.String())
	return nil
}

func unmarshalEventData(e event.Event, data *firestoredata.DocumentEventData) error {
	if e.DataContentType() == event.ApplicationJSON {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(e.Data(), data)
	}
	return proto.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(e.Data(), data)
}

func eventFromDocument(lessonID string, doc *firestoredata.Document) lessons.Event {
	if doc == nil {
		return lessons.Event{LessonID: lessonID}
	}

	fields := doc.GetFields()
	return lessons.Event{
		LessonID: lessonID,
		Exists:   true,
		Content: lessons.Content{
			Teen:  firestoreTruthy(fields[teenField]),
			Adult: firestoreTruthy(fields[adultField]),
		},
	}
}
