// Package trigger adapts platform document-creation events into lesson events.
package trigger

import (
	"context"
	"strings"

	"github.com/Roma7-7-7/lesson-notifier/internal/lessons"
)

const (
	teenField  = "teen"
	adultField = "adult"
)

type Handler interface {
	Handle(ctx context.Context, event lessons.Event) lessons.Outcome
}

// splitDocumentPath returns the collection and document id of the last
// document in a slash separated Firestore path.
func splitDocumentPath(path string) (string, string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 { //nolint:mnd // collection/id
		return "", "", false
	}

	collection, id := parts[len(parts)-2], parts[len(parts)-1]
	if collection == "" || id == "" {
		return "", "", false
	}
	return collection, id, true
}
