// Package lessons decides whether a newly created lesson document should be
// announced to subscribers and dispatches the announcement.
package lessons

import (
	"context"
	"errors"
	"fmt"
)

const (
	Topic       = "all_users"
	ClickAction = "FLUTTER_NOTIFICATION_CLICK"
	Title       = "New Sunday School Lesson!"
)

var (
	ErrInvalidFormat = errors.New("invalid lesson id format")
	ErrInvalidDate   = errors.New("invalid lesson date")
)

type (
	// Event is a lesson document creation as seen by a trigger source.
	Event struct {
		LessonID string
		Exists   bool
		Content  Content
	}

	// Content records which lesson bodies are present and non-empty.
	Content struct {
		Teen  bool
		Adult bool
	}

	Message struct {
		Title string
		Body  string
		Data  map[string]string
		Topic string
	}

	Sender interface {
		Send(ctx context.Context, msg Message) (string, error)
	}

	// DeliveryError is returned in an Outcome when the sender rejects a message.
	DeliveryError struct {
		Err error
	}
)

func (c Content) Empty() bool {
	return !c.Teen && !c.Adult
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver notification: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
