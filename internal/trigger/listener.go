package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

// Listener watches a Firestore collection and hands every newly added
// document to the handler. Documents present when Run starts are ignored.
type Listener struct {
	client      *firestore.Client
	handler     Handler
	collection  string
	concurrency int
	log         *slog.Logger
}

func NewListener(client *firestore.Client, handler Handler, collection string, concurrency int, log *slog.Logger) *Listener {
	return &Listener{
		client:      client,
		handler:     handler,
		collection:  collection,
		concurrency: concurrency,
		log:         log,
	}
}

func (l *Listener) Run(ctx context.Context) error {
	it := l.client.Collection(l.collection).Snapshots(ctx)
	defer it.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	l.log.InfoContext(ctx, "listening for new lessons", "collection", l.collection, "concurrency", l.concurrency)

	initial := true
	for {
		snap, err := it.Next()
		if err != nil {
			_ = g.Wait()
			if ctx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
				l.log.InfoContext(ctx, "stop listening")
				return nil
			}
			return fmt.Errorf("next snapshot: %w", err)
		}

		if initial {
			initial = false
			l.log.DebugContext(ctx, "skipping initial snapshot", "documents", snap.Size)
			continue
		}

		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentAdded {
				continue
			}

			event := eventFromData(change.Doc.Ref.ID, change.Doc.Exists(), change.Doc.Data())
			g.Go(func() error {
				l.handler.Handle(gctx, event)
				return nil
			})
		}
	}
}

func eventFromData(lessonID string, exists bool, data map[string]any) lessons.Event {
	return lessons.Event{
		LessonID: lessonID,
		Exists:   exists,
		Content: lessons.Content{
			Teen:  truthy(data[teenField]),
			Adult: truthy(data[adultField]),
		},
	}
}
